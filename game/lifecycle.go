package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
)

// spawnWorld creates the car and crushers from the configured course.
func (g *Game) spawnWorld() {
	cfg := config.Cfg()

	g.spawnCrushers(cfg)
	g.spawnCar(cfg)

	// Camera starts locked on so the first frame has no catch-up swing
	tr := g.trMap.Get(g.car)
	g.chase.Snap(tr.Position, tr.Rotation())
}

// spawnCar creates the player car at the configured spawn pose.
func (g *Game) spawnCar(cfg *config.Config) {
	tr := components.Transform{
		Position: rl.Vector3{
			X: float32(cfg.Course.Spawn.X),
			Z: float32(cfg.Course.Spawn.Z),
		},
		Yaw: cfg.Derived.SpawnHeadingRad,
	}
	body := components.Body{}
	in := components.DriveInput{}
	car := components.Car{}
	track := components.CheckpointTracker{}

	g.car = g.carMapper.NewEntity(&tr, &body, &in, &car, &track)

	slog.Info("car spawned",
		"x", tr.Position.X,
		"z", tr.Position.Z,
		"heading", cfg.Course.Spawn.Heading,
	)
}

// spawnCrushers creates one crusher per configured site, with staggered
// initial waits so they do not move in lockstep.
func (g *Game) spawnCrushers(cfg *config.Config) {
	rest := float32(cfg.Crusher.RestHeight)
	down := float32(cfg.Crusher.DownDistance)

	for _, site := range cfg.Course.Crushers {
		start := rl.Vector3{X: float32(site.X), Y: rest, Z: float32(site.Z)}
		cr := components.NewCrusher(start, down, g.crusher.SampleWait())
		tr := components.Transform{Position: start}
		g.crusherMapper.NewEntity(&tr, &cr)
	}

	slog.Info("crushers spawned", "count", len(cfg.Course.Crushers))
}

// respawnCar returns the car to the spawn pose after a crusher hit.
// Velocity and drive input are cleared; lap progress is kept.
func (g *Game) respawnCar() {
	cfg := config.Cfg()

	tr := g.trMap.Get(g.car)
	tr.Position = rl.Vector3{
		X: float32(cfg.Course.Spawn.X),
		Z: float32(cfg.Course.Spawn.Z),
	}
	tr.Yaw = cfg.Derived.SpawnHeadingRad

	body := g.bodyMap.Get(g.car)
	body.Velocity = rl.Vector3{}

	in := g.inputMap.Get(g.car)
	*in = components.DriveInput{}

	car := g.carMap.Get(g.car)
	car.CrusherHit = false
	car.OffRoad = false

	g.chase.Snap(tr.Position, tr.Rotation())

	slog.Info("car respawned", "tick", g.tick)
}

package game

import (
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/camera"
	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
	"github.com/kvellan/drift/systems"
	"github.com/kvellan/drift/telemetry"
	"github.com/kvellan/drift/ui"
)

// Options configures a new game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	Autopilot      bool
	StepsPerUpdate int
}

// Game holds the complete game state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	// Car entity and its component mappers
	carMapper *ecs.Map5[
		components.Transform,
		components.Body,
		components.DriveInput,
		components.Car,
		components.CheckpointTracker,
	]
	crusherMapper *ecs.Map2[components.Transform, components.Crusher]
	crusherFilter *ecs.Filter2[components.Transform, components.Crusher]

	trMap    *ecs.Map1[components.Transform]
	bodyMap  *ecs.Map1[components.Body]
	inputMap *ecs.Map1[components.DriveInput]
	carMap   *ecs.Map1[components.Car]
	trackMap *ecs.Map1[components.CheckpointTracker]

	car ecs.Entity

	// Simulation systems in step order
	pilot    *systems.PilotSystem
	vehicle  *systems.VehicleSystem
	physics  *systems.PhysicsSystem
	crusher  *systems.CrusherSystem
	triggers *systems.TriggerSystem
	course   *systems.CourseSystem

	chase *camera.ChaseCamera

	// Course geometry kept for rendering
	zones       []systems.Zone
	checkpoints []systems.Checkpoint

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	hud       *ui.HUD
	perfPanel *ui.PerfPanel

	// State
	tick           int32
	paused         bool
	autopilot      bool
	debugMode      bool
	stepsPerUpdate int
	headless       bool

	// Manual drive keys sampled once per frame
	keyForward, keyReverse, keyLeft, keyRight bool

	// Transition tracking for event logging
	wasOffRoad  bool
	lapsSeen    int
	crusherHits int
}

// NewGame creates a new game instance.
func NewGame(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	checkpoints := systems.CheckpointsFromConfig(cfg.Course.Checkpoints)
	zones := systems.ZonesFromConfig(cfg.Course.OffroadZones)

	g := &Game{
		world: world,
		rng:   rng,
		carMapper: ecs.NewMap5[
			components.Transform,
			components.Body,
			components.DriveInput,
			components.Car,
			components.CheckpointTracker,
		](world),
		crusherMapper: ecs.NewMap2[components.Transform, components.Crusher](world),
		crusherFilter: ecs.NewFilter2[components.Transform, components.Crusher](world),
		trMap:         ecs.NewMap1[components.Transform](world),
		bodyMap:       ecs.NewMap1[components.Body](world),
		inputMap:      ecs.NewMap1[components.DriveInput](world),
		carMap:        ecs.NewMap1[components.Car](world),
		trackMap:      ecs.NewMap1[components.CheckpointTracker](world),

		pilot:    systems.NewPilotSystem(world, checkpoints),
		vehicle:  systems.NewVehicleSystem(world),
		physics:  systems.NewPhysicsSystem(world),
		crusher:  systems.NewCrusherSystem(world, rng),
		triggers: systems.NewTriggerSystem(world, zones),
		course:   systems.NewCourseSystem(world, checkpoints),

		zones:       zones,
		checkpoints: checkpoints,

		chase: camera.New(
			rl.Vector3{
				X: float32(cfg.Chase.OffsetX),
				Y: float32(cfg.Chase.OffsetY),
				Z: float32(cfg.Chase.OffsetZ),
			},
			float32(cfg.Chase.SmoothTime),
			cfg.Derived.RotateSpeedRad,
		),

		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,

		tick:           0,
		autopilot:      opts.Autopilot || opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		headless:       opts.Headless,
	}

	if !opts.Headless {
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(cfg.Screen.Width)-230, 10)
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			Logf("output disabled: %v", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				Logf("failed to write config snapshot: %v", err)
			}
		}
	}

	g.spawnWorld()

	return g
}

// Update runs input handling and one or more simulation steps.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without polling input.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Laps returns the number of completed laps.
func (g *Game) Laps() int {
	return g.trackMap.Get(g.car).Lap
}

// BestLapSec returns the fastest completed lap, or 0 if none yet.
func (g *Game) BestLapSec() float32 {
	return g.trackMap.Get(g.car).BestLap
}

// GatesPassed returns total checkpoint crossings including completed laps.
func (g *Game) GatesPassed() int {
	track := g.trackMap.Get(g.car)
	return track.Lap*len(g.checkpoints) + track.Next
}

// CrusherHits returns the cumulative number of crusher hits this run.
func (g *Game) CrusherHits() int {
	return g.crusherHits
}

// Unload flushes outputs and releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			Logf("failed to close output: %v", err)
		}
	}
}

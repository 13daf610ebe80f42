package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kvellan/drift/config"
	"github.com/kvellan/drift/ui"
)

// Draw renders the 3D scene and HUD.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 24, G: 26, B: 32, A: 255})

	cam := rl.Camera3D{
		Position:   g.chase.Position,
		Target:     rl.Vector3Add(g.chase.Position, g.chase.LookDirection()),
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam)

	rl.DrawGrid(40, 5)
	g.drawOffroadZones()
	g.drawCheckpoints()
	g.drawCrushers()
	g.drawCar()

	if g.debugMode {
		g.drawDebug()
	}

	rl.EndMode3D()

	g.drawHUD()

	rl.EndDrawing()
}

// drawOffroadZones renders the slow-surface patches as flat quads.
func (g *Game) drawOffroadZones() {
	for _, z := range g.zones {
		center := rl.Vector3{X: (z.MinX + z.MaxX) / 2, Y: 0.01, Z: (z.MinZ + z.MaxZ) / 2}
		size := rl.Vector2{X: z.MaxX - z.MinX, Y: z.MaxZ - z.MinZ}
		rl.DrawPlane(center, size, rl.Color{R: 110, G: 84, B: 48, A: 255})
	}
}

// drawCheckpoints renders gates as posts, highlighting the next one.
func (g *Game) drawCheckpoints() {
	track := g.trackMap.Get(g.car)

	for i, ck := range g.checkpoints {
		color := rl.Color{R: 70, G: 110, B: 160, A: 255}
		if i == track.Next {
			color = rl.Gold
		}
		pos := rl.Vector3{X: ck.X, Z: ck.Z}
		rl.DrawCylinder(pos, 0.3, 0.3, 6, 8, color)
	}
}

// drawCrushers renders each crusher head and its support column.
func (g *Game) drawCrushers() {
	cfg := config.Cfg()
	headW := float32(cfg.Crusher.HazardHalfW) * 2
	headH := float32(cfg.Crusher.HazardHalfH) * 2

	query := g.crusherFilter.Query()
	for query.Next() {
		tr, cr := query.Get()

		color := rl.Color{R: 140, G: 140, B: 150, A: 255}
		if cr.Descending() {
			color = rl.Color{R: 200, G: 80, B: 70, A: 255}
		}

		rl.DrawCube(tr.Position, headW, 1, headH, color)
		rl.DrawCubeWires(tr.Position, headW, 1, headH, rl.DarkGray)

		// Support column above the head up to the rest position
		top := cr.Start
		top.Y += 3
		column := rl.Vector3{X: tr.Position.X, Y: (tr.Position.Y + top.Y) / 2, Z: tr.Position.Z}
		rl.DrawCube(column, 0.4, top.Y-tr.Position.Y, 0.4, rl.Gray)
	}
}

// drawCar renders the player car as an oriented body with a nose marker.
func (g *Game) drawCar() {
	tr := g.trMap.Get(g.car)
	car := g.carMap.Get(g.car)

	body := rl.Color{R: 220, G: 60, B: 50, A: 255}
	if car.OffRoad {
		body = rl.Color{R: 160, G: 110, B: 40, A: 255}
	}

	center := tr.Position
	center.Y += 0.5

	rl.PushMatrix()
	rl.Translatef(center.X, center.Y, center.Z)
	rl.Rotatef(tr.Yaw*rl.Rad2deg, 0, 1, 0)
	rl.DrawCube(rl.Vector3{}, 1.6, 1, 3, body)
	rl.DrawCubeWires(rl.Vector3{}, 1.6, 1, 3, rl.Black)
	// Nose marker shows heading
	rl.DrawCube(rl.Vector3{Y: 0.2, Z: 1.2}, 1, 0.4, 0.6, rl.White)
	rl.PopMatrix()
}

// drawDebug renders crusher travel paths, hazard boxes, and gate radii.
func (g *Game) drawDebug() {
	cfg := config.Cfg()
	halfW := float32(cfg.Crusher.HazardHalfW)
	halfH := float32(cfg.Crusher.HazardHalfH)
	radius := float32(cfg.Course.CheckpointRadius)

	query := g.crusherFilter.Query()
	for query.Next() {
		tr, cr := query.Get()

		rl.DrawLine3D(cr.Start, cr.Down, rl.Yellow)
		rl.DrawSphere(cr.Start, 0.15, rl.Yellow)
		rl.DrawSphere(cr.Down, 0.15, rl.Orange)

		hazard := tr.Position
		rl.DrawCubeWires(hazard, halfW*2, 1, halfH*2, rl.Red)
	}

	for _, ck := range g.checkpoints {
		center := rl.Vector3{X: ck.X, Y: 0.05, Z: ck.Z}
		rl.DrawCircle3D(center, radius, rl.Vector3{X: 1}, 90, rl.SkyBlue)
	}

	// Velocity vector
	trCar := g.trMap.Get(g.car)
	bodyCar := g.bodyMap.Get(g.car)
	tip := rl.Vector3Add(trCar.Position, bodyCar.Velocity)
	tip.Y += 0.5
	from := trCar.Position
	from.Y += 0.5
	rl.DrawLine3D(from, tip, rl.Green)
}

// drawHUD renders the 2D overlay.
func (g *Game) drawHUD() {
	body := g.bodyMap.Get(g.car)
	car := g.carMap.Get(g.car)
	track := g.trackMap.Get(g.car)

	speed := rl.Vector3Length(rl.Vector3{X: body.Velocity.X, Z: body.Velocity.Z})

	g.hud.Draw(ui.HUDData{
		Speed:     speed,
		Lap:       track.Lap,
		NextGate:  track.Next,
		GateCount: len(g.checkpoints),
		LapTime:   track.LapTime,
		LastLap:   track.LastLap,
		BestLap:   track.BestLap,
		OffRoad:   car.OffRoad,
		Autopilot: g.autopilot,
		Paused:    g.paused,
		Tick:      g.tick,
		Steps:     g.stepsPerUpdate,
		FPS:       rl.GetFPS(),
	})

	if g.debugMode {
		g.perfPanel.Draw(g.perfCollector.Stats())
		g.hud.DrawControls(fmt.Sprintf(
			"WASD/arrows drive | Space pause | Tab autopilot | R respawn | F1 debug | </> speed (%dx)",
			g.stepsPerUpdate,
		), int32(config.Cfg().Screen.Height))
	}
}

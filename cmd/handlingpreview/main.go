// Handling preview tool - interactive visualization with sliders.
//
// Drags the vehicle model through a scripted full-throttle turn and plots
// the resulting trajectory and speed curve, so handling parameters can be
// tuned by eye before committing them to config.
//
// Usage: go run ./cmd/handlingpreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
	"github.com/kvellan/drift/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	simTicks = 900 // 15 seconds at 60 Hz
)

// HandlingParams holds the tunable vehicle parameters.
type HandlingParams struct {
	Acceleration float32
	Braking      float32
	Grip         float32
	MaxTurnRate  float32
	MinTurnSpeed float32
	OffRoad      bool
}

// simResult holds one scripted run.
type simResult struct {
	points []rl.Vector3
	speeds []float32
}

func main() {
	config.MustInit("")
	base := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Handling Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := HandlingParams{
		Acceleration: float32(base.Vehicle.Acceleration),
		Braking:      float32(base.Vehicle.Braking),
		Grip:         float32(base.Vehicle.Grip),
		MaxTurnRate:  float32(base.Vehicle.MaxTurnRate),
		MinTurnSpeed: float32(base.Vehicle.MinTurnSpeed),
	}

	needsRegen := true
	var result simResult

	for !rl.WindowShouldClose() {
		if needsRegen {
			applyParams(params)
			result = simulate(params.OffRoad)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawTrajectory(result.points)
		drawSpeedCurve(result.speeds)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Handling Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		panelY, changed := slider(panelX, panelY, "Acceleration (m/s^2)", &params.Acceleration, 4, 30)
		needsRegen = needsRegen || changed

		panelY, changed = slider(panelX, panelY, "Braking (m/s^2)", &params.Braking, 8, 50)
		needsRegen = needsRegen || changed

		panelY, changed = slider(panelX, panelY, "Grip (1/s)", &params.Grip, 1, 15)
		needsRegen = needsRegen || changed

		panelY, changed = slider(panelX, panelY, "Max turn rate (deg/s)", &params.MaxTurnRate, 40, 240)
		needsRegen = needsRegen || changed

		panelY, changed = slider(panelX, panelY, "Min turn speed (m/s)", &params.MinTurnSpeed, 0.1, 3)
		needsRegen = needsRegen || changed

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.OffRoad, "On road", "Off road")) {
			params.OffRoad = !params.OffRoad
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset") {
			params = HandlingParams{
				Acceleration: float32(base.Vehicle.Acceleration),
				Braking:      float32(base.Vehicle.Braking),
				Grip:         float32(base.Vehicle.Grip),
				MaxTurnRate:  float32(base.Vehicle.MaxTurnRate),
				MinTurnSpeed: float32(base.Vehicle.MinTurnSpeed),
			}
			needsRegen = true
		}

		rl.EndDrawing()
	}
}

// slider draws a labeled slider and reports whether the value changed.
func slider(x, y float32, label string, value *float32, min, max float32) (float32, bool) {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18

	newValue := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%.1f", min), fmt.Sprintf("%.1f", max),
		*value, min, max,
	)
	rl.DrawText(fmt.Sprintf("%.2f", *value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)

	changed := newValue != *value
	*value = newValue
	return y + 35, changed
}

func toggleText(cond bool, whenTrue, whenFalse string) string {
	if cond {
		return whenTrue
	}
	return whenFalse
}

// applyParams installs the slider values into the active config.
func applyParams(p HandlingParams) {
	cfg, _ := config.Load("")
	cfg.Vehicle.Acceleration = float64(p.Acceleration)
	cfg.Vehicle.Braking = float64(p.Braking)
	cfg.Vehicle.Grip = float64(p.Grip)
	cfg.Vehicle.MaxTurnRate = float64(p.MaxTurnRate)
	cfg.Vehicle.MinTurnSpeed = float64(p.MinTurnSpeed)
	config.Set(cfg)
}

// simulate runs the scripted maneuver: full throttle, full right steer.
func simulate(offRoad bool) simResult {
	w := ecs.NewWorld()
	mapper := ecs.NewMap4[components.Transform, components.Body, components.DriveInput, components.Car](w)

	tr := components.Transform{}
	body := components.Body{}
	in := components.DriveInput{Throttle: 1, Steer: 1}
	car := components.Car{OffRoad: offRoad}
	e := mapper.NewEntity(&tr, &body, &in, &car)

	vehicle := systems.NewVehicleSystem(w)
	physics := systems.NewPhysicsSystem(w)
	trMap := ecs.NewMap1[components.Transform](w)
	bodyMap := ecs.NewMap1[components.Body](w)

	dt := config.Cfg().Derived.DT32

	result := simResult{
		points: make([]rl.Vector3, 0, simTicks),
		speeds: make([]float32, 0, simTicks),
	}

	for i := 0; i < simTicks; i++ {
		vehicle.Update(dt)
		physics.Update(dt)

		result.points = append(result.points, trMap.Get(e).Position)
		v := bodyMap.Get(e).Velocity
		result.speeds = append(result.speeds, float32(math.Hypot(float64(v.X), float64(v.Z))))
	}

	return result
}

// drawTrajectory plots the top-down XZ path in the preview square.
func drawTrajectory(points []rl.Vector3) {
	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
	if len(points) == 0 {
		return
	}

	// Fit the path into the square with uniform scale
	minX, maxX := points[0].X, points[0].X
	minZ, maxZ := points[0].Z, points[0].Z
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Z < minZ {
			minZ = p.Z
		}
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}

	span := maxX - minX
	if maxZ-minZ > span {
		span = maxZ - minZ
	}
	if span < 1 {
		span = 1
	}
	scale := float32(previewSize-40) / span

	toScreen := func(p rl.Vector3) rl.Vector2 {
		return rl.Vector2{
			X: 30 + (p.X-minX)*scale,
			Y: float32(previewSize) - 10 - (p.Z-minZ)*scale,
		}
	}

	for i := 1; i < len(points); i++ {
		a := toScreen(points[i-1])
		b := toScreen(points[i])
		rl.DrawLineV(a, b, rl.Maroon)
	}

	start := toScreen(points[0])
	rl.DrawCircleV(start, 4, rl.DarkGreen)
}

// drawSpeedCurve plots speed over time under the preview square.
func drawSpeedCurve(speeds []float32) {
	const plotH = 140
	y0 := int32(previewSize + 30)
	rl.DrawRectangleLines(10, y0, previewSize, plotH, rl.DarkGray)
	if len(speeds) == 0 {
		return
	}

	var maxSpeed float32 = 1
	for _, s := range speeds {
		if s > maxSpeed {
			maxSpeed = s
		}
	}

	step := float32(previewSize-20) / float32(len(speeds))
	for i := 1; i < len(speeds); i++ {
		x1 := 20 + float32(i-1)*step
		x2 := 20 + float32(i)*step
		y1 := float32(y0) + plotH - 10 - speeds[i-1]/maxSpeed*(plotH-20)
		y2 := float32(y0) + plotH - 10 - speeds[i]/maxSpeed*(plotH-20)
		rl.DrawLineV(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, rl.DarkBlue)
	}

	rl.DrawText(fmt.Sprintf("Top speed: %.1f m/s", maxSpeed), 20, y0+5, 14, rl.DarkGray)
}

package game

import (
	"log/slog"
	"math"

	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
	"github.com/kvellan/drift/telemetry"
)

// simulationStep runs a single fixed-dt tick.
func (g *Game) simulationStep() {
	dt := config.Cfg().Derived.DT32

	g.perfCollector.StartTick()

	// 1. Drive input: autopilot steers toward the next gate, manual mode
	// applies the keys sampled by handleInput.
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	if g.autopilot {
		g.pilot.Update()
	} else {
		g.applyManualInput()
	}

	// 2. Vehicle model: throttle, braking, grip, steering
	g.perfCollector.StartPhase(telemetry.PhaseVehicle)
	g.vehicle.Update(dt)

	// 3. Integrate positions
	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.physics.Update(dt)

	// 4. Crusher heads
	g.perfCollector.StartPhase(telemetry.PhaseCrusher)
	g.crusher.Update(dt)

	// 5. Surface and hazard triggers
	g.perfCollector.StartPhase(telemetry.PhaseTriggers)
	g.triggers.Update()

	// 6. Lap tracking
	g.perfCollector.StartPhase(telemetry.PhaseCourse)
	g.course.Update(dt)

	// 7. Chase camera follows the car
	g.perfCollector.StartPhase(telemetry.PhaseCamera)
	tr := g.trMap.Get(g.car)
	g.chase.Update(tr.Position, tr.Rotation(), dt)

	// 8. Telemetry and event handling
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordTick()
	g.handleEvents()
	g.flushTelemetry()

	g.perfCollector.EndTick()
	g.tick++
}

// applyManualInput translates the sampled key state into drive input.
func (g *Game) applyManualInput() {
	in := g.inputMap.Get(g.car)
	*in = components.MakeDriveInput(g.keyForward, g.keyReverse, g.keyLeft, g.keyRight)
}

// recordTick feeds the current car state to the stats collector.
func (g *Game) recordTick() {
	body := g.bodyMap.Get(g.car)
	car := g.carMap.Get(g.car)

	vx := float64(body.Velocity.X)
	vz := float64(body.Velocity.Z)
	speed := math.Sqrt(vx*vx + vz*vz)

	g.collector.RecordTick(speed, car.OffRoad)
}

// handleEvents reacts to state transitions: surface changes, crusher hits,
// and completed laps.
func (g *Game) handleEvents() {
	car := g.carMap.Get(g.car)

	if car.OffRoad != g.wasOffRoad {
		if car.OffRoad {
			slog.Debug("off road", "tick", g.tick)
		} else {
			slog.Debug("back on road", "tick", g.tick)
		}
		g.wasOffRoad = car.OffRoad
	}

	if car.CrusherHit {
		g.crusherHits++
		g.collector.RecordCrusherHit()
		slog.Info("crusher hit", "tick", g.tick)
		g.respawnCar()
	}

	track := g.trackMap.Get(g.car)
	if track.Lap > g.lapsSeen {
		g.lapsSeen = track.Lap
		g.collector.RecordLap(float64(track.LastLap), float64(track.BestLap))

		slog.Info("lap complete",
			"lap", track.Lap,
			"time", track.LastLap,
			"best", track.BestLap,
		)

		if g.outputManager != nil {
			rec := telemetry.LapRecord{
				Tick:       g.tick,
				SimTimeSec: float64(g.tick) * float64(config.Cfg().Physics.DT),
				Lap:        track.Lap,
				LapSec:     float64(track.LastLap),
				BestSec:    float64(track.BestLap),
			}
			if err := g.outputManager.WriteLap(rec); err != nil {
				slog.Error("failed to write lap", "error", err)
			}
		}
	}
}

// flushTelemetry closes the stats window when due and emits the results.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

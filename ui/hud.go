package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kvellan/drift/systems"
	"github.com/kvellan/drift/telemetry"
)

// HUDData holds the data needed to render the driving HUD.
type HUDData struct {
	Speed     float32 // Horizontal speed (m/s)
	Lap       int
	NextGate  int
	GateCount int
	LapTime   float32
	LastLap   float32
	BestLap   float32
	OffRoad   bool
	Autopilot bool
	Paused    bool
	Tick      int32
	Steps     int
	FPS       int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(fmt.Sprintf("%5.1f m/s", data.Speed), 10, 10, 28, rl.White)

	rl.DrawText(
		fmt.Sprintf("Lap %d | Gate %d/%d | %s", data.Lap+1, data.NextGate+1, data.GateCount, formatLapTime(data.LapTime)),
		10, 45, 18, rl.LightGray,
	)

	lapLine := "Last: --  Best: --"
	if data.LastLap > 0 {
		lapLine = fmt.Sprintf("Last: %s  Best: %s", formatLapTime(data.LastLap), formatLapTime(data.BestLap))
	}
	rl.DrawText(lapLine, 10, 68, 18, rl.LightGray)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Steps, data.FPS),
		10, 91, 14, rl.Gray,
	)

	y := int32(112)
	if data.OffRoad {
		rl.DrawText("OFF ROAD", 10, y, 18, h.renderer.Theme.WarnColor)
		y += 22
	}
	if data.Autopilot {
		rl.DrawText("AUTOPILOT", 10, y, 18, rl.SkyBlue)
		y += 22
	}
	if data.Paused {
		rl.DrawText("PAUSED", 10, y, 18, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(controls string, screenHeight int32) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// formatLapTime renders seconds as m:ss.mmm.
func formatLapTime(sec float32) string {
	d := time.Duration(float64(sec) * float64(time.Second))
	m := int(d.Minutes())
	rest := d - time.Duration(m)*time.Minute
	return fmt.Sprintf("%d:%06.3f", m, rest.Seconds())
}

// PerfPanel renders tick timing and phase percentages. The system
// registry supplies the row order and display names so the panel stays
// in sync with the simulation step.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: systems.NewSystemRegistry(),
		x:        x,
		y:        y,
	}
}

// Draw renders the performance panel from aggregated stats.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	width := int32(220)
	rows := p.registry.All()

	height := p.renderer.Theme.LineHeight*int32(len(rows)+3) + p.renderer.Theme.Padding*2
	p.renderer.DrawPanel(p.x, p.y, width, height)

	x := p.x + p.renderer.Theme.Padding
	y := p.y + p.renderer.Theme.Padding

	y = p.renderer.DrawSectionHeader(x, y, "Performance")
	y = p.renderer.DrawLabelValue(x, y, "tick", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = p.renderer.DrawLabelValue(x, y, "ticks/s", fmt.Sprintf("%.0f", stats.TicksPerSecond))

	for _, info := range rows {
		pct := stats.PhasePct[info.ID]
		y = p.renderer.DrawLabelValue(x, y, info.Name, fmt.Sprintf("%4.1f%%", pct))
	}
}

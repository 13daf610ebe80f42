package telemetry

// Collector accumulates per-tick driving samples within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Samples and counters for the current window
	speeds       []float64
	offRoadTicks int
	totalTicks   int
	distance     float64
	crusherHits  int
	lapsDone     int
	lastLapSec   float64
	bestLapSec   float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		speeds:              make([]float64, 0, ticksPerWindow),
	}
}

// RecordTick records one simulation tick of car state.
// speed is the horizontal speed in m/s.
func (c *Collector) RecordTick(speed float64, offRoad bool) {
	c.speeds = append(c.speeds, speed)
	c.distance += speed * float64(c.dt)
	c.totalTicks++
	if offRoad {
		c.offRoadTicks++
	}
}

// RecordCrusherHit records the car being caught by a crusher head.
func (c *Collector) RecordCrusherHit() {
	c.crusherHits++
}

// RecordLap records a completed lap. bestSec is the best lap so far
// including this one.
func (c *Collector) RecordLap(lapSec, bestSec float64) {
	c.lapsDone++
	c.lastLapSec = lapSec
	c.bestLapSec = bestSec
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// Lap times persist across windows so every row carries the latest values.
func (c *Collector) Flush(currentTick int32) WindowStats {
	mean, p10, p50, p90, max := ComputeSpeedStats(c.speeds)

	var offRoadFrac float64
	if c.totalTicks > 0 {
		offRoadFrac = float64(c.offRoadTicks) / float64(c.totalTicks)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		SpeedMean: mean,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,
		SpeedMax:  max,

		Distance: c.distance,

		OffRoadFrac: offRoadFrac,
		CrusherHits: c.crusherHits,

		LapsCompleted: c.lapsDone,
		LastLapSec:    c.lastLapSec,
		BestLapSec:    c.bestLapSec,
	}

	c.windowStartTick = currentTick
	c.speeds = c.speeds[:0]
	c.offRoadTicks = 0
	c.totalTicks = 0
	c.distance = 0
	c.crusherHits = 0
	c.lapsDone = 0

	return stats
}

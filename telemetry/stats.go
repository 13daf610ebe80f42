package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated driving statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Speed distribution over the window (m/s, horizontal)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Distance covered during the window
	Distance float64 `csv:"distance"`

	// Surface and hazard events
	OffRoadFrac float64 `csv:"offroad_frac"`
	CrusherHits int     `csv:"crusher_hits"`

	// Lap progress
	LapsCompleted int     `csv:"laps_completed"`
	LastLapSec    float64 `csv:"last_lap"`
	BestLapSec    float64 `csv:"best_lap"`
}

// ComputeSpeedStats calculates mean, percentiles, and max from speed samples.
func ComputeSpeedStats(values []float64) (mean, p10, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)
	max = sorted[n-1]

	return mean, p10, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("distance", s.Distance),
		slog.Float64("offroad_frac", s.OffRoadFrac),
		slog.Int("crusher_hits", s.CrusherHits),
		slog.Int("laps_completed", s.LapsCompleted),
		slog.Float64("last_lap", s.LastLapSec),
		slog.Float64("best_lap", s.BestLapSec),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"speed_mean", s.SpeedMean,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"distance", s.Distance,
		"offroad_frac", s.OffRoadFrac,
		"crusher_hits", s.CrusherHits,
		"laps_completed", s.LapsCompleted,
		"last_lap", s.LastLapSec,
		"best_lap", s.BestLapSec,
	)
}

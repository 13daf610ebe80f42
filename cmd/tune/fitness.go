package main

import (
	"math"
	"sync"

	"github.com/kvellan/drift/config"
	"github.com/kvellan/drift/game"
)

// Fitness shaping constants.
const (
	// referenceLapSec anchors the lap-time quality score: a best lap at
	// or under this earns full quality, slower laps earn less.
	referenceLapSec = 30.0

	// crusherHitPenalty is added per hit, in units of gates passed.
	crusherHitPenalty = 3.0
)

// runResult holds the results from a single autopilot run.
type runResult struct {
	gatesPassed int
	laps        int
	bestLapSec  float64
	crusherHits int
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// FitnessEvaluator runs headless autopilot laps and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a parameter vector (lower = better).
// All seeds share the same parameters, so the global config is swapped
// once before the parallel runs; each run only reads it.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	config.Set(cfg)

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(s)
			quality := lapQuality(result)
			results[idx] = seedResult{
				fitness: computeFitness(result, quality),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless autopilot run.
func (fe *FitnessEvaluator) runSimulation(seed int64) runResult {
	g := game.NewGame(game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
	})

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	result := runResult{
		gatesPassed: g.GatesPassed(),
		laps:        g.Laps(),
		bestLapSec:  float64(g.BestLapSec()),
		crusherHits: g.CrusherHits(),
	}
	g.Unload()
	return result
}

// copyConfig creates a fresh config carrying the base values.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg, _ := config.Load("")
	*cfg = *fe.baseConfig
	return cfg
}

// lapQuality scores lap speed in [0, 1]. No completed laps means 0.
func lapQuality(r runResult) float64 {
	if r.laps == 0 || r.bestLapSec <= 0 {
		return 0
	}
	q := referenceLapSec / r.bestLapSec
	if q > 1 {
		q = 1
	}
	return q
}

// computeFitness calculates the scalar fitness (lower = better).
// Course progress dominates; lap speed adds up to a 20% bonus, and each
// crusher hit costs the equivalent of a few gates.
func computeFitness(r runResult, quality float64) float64 {
	progress := float64(r.gatesPassed)
	return -(progress * (1.0 + 0.2*quality)) + crusherHitPenalty*float64(r.crusherHits)
}

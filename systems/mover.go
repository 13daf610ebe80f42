// Package systems contains the per-tick simulation systems for the driving sandbox.
package systems

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
)

// arriveEpsilon is the remaining distance below which a travel leg is
// considered complete and the head snaps onto the target.
const arriveEpsilon = 0.01

// CrusherSystem advances the periodic crusher obstacles. Each crusher loops
// forever: dwell a random time, descend to its down position, dwell again,
// rise back to its start position. Travel uses a distance-based ease that
// slows the head as it closes on either end of the stroke.
type CrusherSystem struct {
	filter ecs.Filter2[components.Transform, components.Crusher]
	rng    *rand.Rand

	speed     float32
	slowDist  float32
	minFactor float32
	minWait   float32
	maxWait   float32
}

// NewCrusherSystem creates the crusher system from the loaded config.
func NewCrusherSystem(w *ecs.World, rng *rand.Rand) *CrusherSystem {
	cfg := config.Cfg()
	return &CrusherSystem{
		filter:    *ecs.NewFilter2[components.Transform, components.Crusher](w),
		rng:       rng,
		speed:     float32(cfg.Crusher.Speed),
		slowDist:  float32(cfg.Crusher.SlowDistance),
		minFactor: float32(cfg.Crusher.MinFactor),
		minWait:   float32(cfg.Crusher.MinWait),
		maxWait:   float32(cfg.Crusher.MaxWait),
	}
}

// SampleWait returns a uniformly-random dwell duration in [minWait, maxWait].
func (s *CrusherSystem) SampleWait() float32 {
	return s.minWait + s.rng.Float32()*(s.maxWait-s.minWait)
}

// Update advances every crusher by one tick.
func (s *CrusherSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		tr, cr := query.Get()

		switch cr.Phase {
		case components.CrusherWaitingBeforeDown, components.CrusherWaitingBeforeUp:
			cr.Wait -= dt
			if cr.Wait <= 0 {
				cr.Wait = 0
				if cr.Phase == components.CrusherWaitingBeforeDown {
					cr.Phase = components.CrusherMovingDown
				} else {
					cr.Phase = components.CrusherMovingUp
				}
			}

		case components.CrusherMovingDown, components.CrusherMovingUp:
			pos, arrived := MoveTowardsEased(tr.Position, cr.Target(), s.speed, s.slowDist, s.minFactor, dt)
			tr.Position = pos
			if arrived {
				cr.Wait = s.SampleWait()
				if cr.Phase == components.CrusherMovingDown {
					cr.Phase = components.CrusherWaitingBeforeUp
				} else {
					cr.Phase = components.CrusherWaitingBeforeDown
				}
			}
		}
	}
}

// MoveTowardsEased takes one bounded step from pos toward target and reports
// whether the target was reached. The speed factor ramps linearly from
// minFactor at the target up to 1.0 once the remaining distance is at least
// slowDist; the step is clamped so the result never overshoots. Within
// arriveEpsilon the position snaps exactly onto the target.
func MoveTowardsEased(pos, target rl.Vector3, speed, slowDist, minFactor, dt float32) (rl.Vector3, bool) {
	delta := rl.Vector3Subtract(target, pos)
	remaining := rl.Vector3Length(delta)
	if remaining < arriveEpsilon {
		return target, true
	}

	factor := lerp(minFactor, 1, clamp01(remaining/slowDist))
	step := speed * factor * dt
	if step >= remaining {
		return target, true
	}

	dir := rl.Vector3Scale(delta, 1/remaining)
	return rl.Vector3Add(pos, rl.Vector3Scale(dir, step)), false
}

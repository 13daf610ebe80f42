package systems

import (
	"math"
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
)

func TestMoveTowardsEasedNeverOvershoots(t *testing.T) {
	pos := rl.Vector3{Y: 3}
	target := rl.Vector3{Y: 1}

	prev := float64(rl.Vector3Distance(pos, target))
	for i := 0; i < 10000; i++ {
		var arrived bool
		pos, arrived = MoveTowardsEased(pos, target, 6, 1, 0.25, testDT)
		remaining := float64(rl.Vector3Distance(pos, target))
		if remaining > prev+1e-6 {
			t.Fatalf("tick %d: remaining distance grew from %f to %f", i, prev, remaining)
		}
		prev = remaining
		if arrived {
			if pos != target {
				t.Fatalf("arrival did not snap exactly: %v vs %v", pos, target)
			}
			return
		}
	}
	t.Fatal("never arrived at target")
}

func TestMoveTowardsEasedSlowsNearTarget(t *testing.T) {
	far := rl.Vector3{Y: 10}
	near := rl.Vector3{Y: 0.1}
	target := rl.Vector3{}

	farNext, _ := MoveTowardsEased(far, target, 6, 1, 0.25, testDT)
	nearNext, _ := MoveTowardsEased(near, target, 6, 1, 0.25, testDT)

	farStep := float64(rl.Vector3Distance(far, farNext))
	nearStep := float64(rl.Vector3Distance(near, nearNext))
	if nearStep >= farStep {
		t.Errorf("step near target (%f) should be smaller than step far away (%f)", nearStep, farStep)
	}

	// Beyond the slow-down distance the ramp is saturated at full speed
	wantFar := 6 * float64(testDT)
	if math.Abs(farStep-wantFar) > 1e-5 {
		t.Errorf("far step %f, want full-speed step %f", farStep, wantFar)
	}

	// At the target side of the ramp the factor bottoms out at minFactor
	wantNearMin := 6 * 0.25 * float64(testDT)
	if nearStep+1e-6 < wantNearMin {
		t.Errorf("near step %f collapsed below the minimum factor floor %f", nearStep, wantNearMin)
	}
}

func TestMoveTowardsEasedSnapsWithinEpsilon(t *testing.T) {
	pos := rl.Vector3{Y: 0.005}
	target := rl.Vector3{}

	got, arrived := MoveTowardsEased(pos, target, 6, 1, 0.25, testDT)
	if !arrived {
		t.Fatal("expected arrival within epsilon")
	}
	if got != target {
		t.Errorf("expected exact snap to %v, got %v", target, got)
	}
}

func TestSampleWaitWithinBounds(t *testing.T) {
	ensureConfig()
	w := ecs.NewWorld()
	s := NewCrusherSystem(w, rand.New(rand.NewSource(7)))

	cfg := config.Cfg()
	for i := 0; i < 1000; i++ {
		wait := float64(s.SampleWait())
		if wait < cfg.Crusher.MinWait || wait > cfg.Crusher.MaxWait {
			t.Fatalf("sampled wait %f outside [%f, %f]", wait, cfg.Crusher.MinWait, cfg.Crusher.MaxWait)
		}
	}
}

// runCrusher advances the system until the predicate holds, failing after
// maxTicks.
func runCrusher(t *testing.T, s *CrusherSystem, trMap *ecs.Map1[components.Transform], crMap *ecs.Map1[components.Crusher], e ecs.Entity, maxTicks int, what string, done func(*components.Transform, *components.Crusher) bool) {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		s.Update(testDT)
		if done(trMap.Get(e), crMap.Get(e)) {
			return
		}
	}
	t.Fatalf("%s: not reached within %d ticks", what, maxTicks)
}

func TestCrusherFullCycle(t *testing.T) {
	ensureConfig()
	w := ecs.NewWorld()
	s := NewCrusherSystem(w, rand.New(rand.NewSource(42)))
	mapper := ecs.NewMap2[components.Transform, components.Crusher](w)
	trMap := ecs.NewMap1[components.Transform](w)
	crMap := ecs.NewMap1[components.Crusher](w)

	start := rl.Vector3{X: 5, Y: 3, Z: -2}
	tr := components.Transform{Position: start}
	cr := components.NewCrusher(start, 2, 0.5)
	e := mapper.NewEntity(&tr, &cr)

	// 15 s of ticks covers the longest dwell plus travel with margin
	const maxTicks = 15 * 60

	// Leg 1: reaches the down position exactly
	runCrusher(t, s, trMap, crMap, e, maxTicks, "descent", func(tr *components.Transform, cr *components.Crusher) bool {
		return cr.Phase == components.CrusherWaitingBeforeUp
	})
	got := trMap.Get(e).Position
	if math.Abs(float64(got.Y-(start.Y-2))) > 0.01 {
		t.Errorf("down position y = %f, want %f", got.Y, start.Y-2)
	}
	if got.X != start.X || got.Z != start.Z {
		t.Errorf("crusher drifted horizontally to %v", got)
	}

	// The dwell at the bottom is a fresh random sample within bounds
	cfg := config.Cfg()
	wait := float64(crMap.Get(e).Wait)
	if wait < cfg.Crusher.MinWait || wait > cfg.Crusher.MaxWait {
		t.Errorf("bottom dwell %f outside [%f, %f]", wait, cfg.Crusher.MinWait, cfg.Crusher.MaxWait)
	}

	// Leg 2: returns to the start position exactly
	runCrusher(t, s, trMap, crMap, e, maxTicks, "ascent", func(tr *components.Transform, cr *components.Crusher) bool {
		return cr.Phase == components.CrusherWaitingBeforeDown
	})
	got = trMap.Get(e).Position
	if rl.Vector3Distance(got, start) > 0.01 {
		t.Errorf("crusher did not return to start: %v vs %v", got, start)
	}
}

func TestCrusherWaitsBeforeMoving(t *testing.T) {
	ensureConfig()
	w := ecs.NewWorld()
	s := NewCrusherSystem(w, rand.New(rand.NewSource(3)))
	mapper := ecs.NewMap2[components.Transform, components.Crusher](w)
	trMap := ecs.NewMap1[components.Transform](w)

	start := rl.Vector3{Y: 3}
	tr := components.Transform{Position: start}
	cr := components.NewCrusher(start, 2, 1.0)
	e := mapper.NewEntity(&tr, &cr)

	// For the first second the head must not move
	for i := 0; i < 59; i++ {
		s.Update(testDT)
		if trMap.Get(e).Position != start {
			t.Fatalf("tick %d: crusher moved during its dwell", i)
		}
	}
}

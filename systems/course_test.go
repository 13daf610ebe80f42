package systems

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/components"
)

// courseRig bundles a world with a tracked car on a three-gate course.
type courseRig struct {
	sys   *CourseSystem
	trMap *ecs.Map1[components.Transform]
	ckMap *ecs.Map1[components.CheckpointTracker]
	e     ecs.Entity
}

func newCourseRig(t *testing.T) *courseRig {
	t.Helper()
	ensureConfig()

	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Transform, components.CheckpointTracker](w)
	tr := components.Transform{}
	track := components.CheckpointTracker{}
	e := mapper.NewEntity(&tr, &track)

	gates := []Checkpoint{{X: 0, Z: 50}, {X: 50, Z: 50}, {X: 50, Z: 0}}
	return &courseRig{
		sys:   NewCourseSystem(w, gates),
		trMap: ecs.NewMap1[components.Transform](w),
		ckMap: ecs.NewMap1[components.CheckpointTracker](w),
		e:     e,
	}
}

func TestCourseAdvancesThroughGatesInOrder(t *testing.T) {
	r := newCourseRig(t)

	// Sitting at gate 1 while gate 0 is next: no progress
	r.trMap.Get(r.e).Position = rl.Vector3{X: 50, Z: 50}
	r.sys.Update(testDT)
	if r.ckMap.Get(r.e).Next != 0 {
		t.Fatal("out-of-order gate advanced the tracker")
	}

	// Crossing gate 0 advances to gate 1
	r.trMap.Get(r.e).Position = rl.Vector3{X: 0, Z: 50}
	r.sys.Update(testDT)
	if r.ckMap.Get(r.e).Next != 1 {
		t.Fatalf("expected next gate 1, got %d", r.ckMap.Get(r.e).Next)
	}
}

func TestCourseLapCompletion(t *testing.T) {
	r := newCourseRig(t)
	gates := r.sys.Checkpoints()

	for _, g := range gates {
		r.trMap.Get(r.e).Position = rl.Vector3{X: g.X, Z: g.Z}
		r.sys.Update(testDT)
	}

	track := r.ckMap.Get(r.e)
	if track.Lap != 1 {
		t.Fatalf("expected 1 completed lap, got %d", track.Lap)
	}
	if track.Next != 0 {
		t.Errorf("expected tracker to wrap to gate 0, got %d", track.Next)
	}
	if track.LastLap <= 0 || track.BestLap != track.LastLap {
		t.Errorf("lap times not recorded: last %f best %f", track.LastLap, track.BestLap)
	}
	if track.LapTime != 0 {
		t.Errorf("lap timer not reset, got %f", track.LapTime)
	}
}

func TestCourseBestLapKeepsFastest(t *testing.T) {
	r := newCourseRig(t)
	gates := r.sys.Checkpoints()

	lap := func(extraTicks int) {
		for i := 0; i < extraTicks; i++ {
			r.trMap.Get(r.e).Position = rl.Vector3{X: -100, Z: -100}
			r.sys.Update(testDT)
		}
		for _, g := range gates {
			r.trMap.Get(r.e).Position = rl.Vector3{X: g.X, Z: g.Z}
			r.sys.Update(testDT)
		}
	}

	lap(60) // Slow lap
	first := r.ckMap.Get(r.e).LastLap
	lap(0) // Fast lap
	track := r.ckMap.Get(r.e)

	if track.Lap != 2 {
		t.Fatalf("expected 2 laps, got %d", track.Lap)
	}
	if track.LastLap >= first {
		t.Fatalf("second lap (%f) should be faster than first (%f)", track.LastLap, first)
	}
	if math.Abs(float64(track.BestLap-track.LastLap)) > 1e-6 {
		t.Errorf("best lap %f should equal the faster lap %f", track.BestLap, track.LastLap)
	}
}

func TestCourseLapTimerAccumulates(t *testing.T) {
	r := newCourseRig(t)

	r.trMap.Get(r.e).Position = rl.Vector3{X: -100, Z: -100}
	for i := 0; i < 60; i++ {
		r.sys.Update(testDT)
	}
	got := float64(r.ckMap.Get(r.e).LapTime)
	if math.Abs(got-1.0) > 1e-3 {
		t.Errorf("lap timer after 60 ticks = %f, want ~1.0", got)
	}
}

package systems

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
)

func TestZoneContains(t *testing.T) {
	z := Zone{MinX: -5, MaxX: 5, MinZ: 10, MaxZ: 20}

	tests := []struct {
		x, zz float32
		want  bool
	}{
		{0, 15, true},
		{-5, 10, true}, // Edges count as inside
		{5, 20, true},
		{-5.1, 15, false},
		{0, 9.9, false},
		{6, 21, false},
	}
	for _, tt := range tests {
		if got := z.Contains(tt.x, tt.zz); got != tt.want {
			t.Errorf("Contains(%f, %f) = %v, want %v", tt.x, tt.zz, got, tt.want)
		}
	}
}

func TestZonesFromConfig(t *testing.T) {
	zones := ZonesFromConfig([]config.ZoneConfig{{X: 10, Z: -4, Width: 6, Depth: 2}})
	if len(zones) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(zones))
	}
	z := zones[0]
	if z.MinX != 7 || z.MaxX != 13 || z.MinZ != -5 || z.MaxZ != -3 {
		t.Errorf("unexpected zone bounds: %+v", z)
	}
}

// triggerRig bundles a world with a car and one crusher for overlap tests.
type triggerRig struct {
	sys    *TriggerSystem
	trMap  *ecs.Map1[components.Transform]
	carMap *ecs.Map1[components.Car]
	crMap  *ecs.Map1[components.Crusher]
	car    ecs.Entity
	crush  ecs.Entity
}

func newTriggerRig(t *testing.T, zones []Zone) *triggerRig {
	t.Helper()
	ensureConfig()

	w := ecs.NewWorld()

	carMapper := ecs.NewMap2[components.Transform, components.Car](w)
	tr := components.Transform{}
	car := components.Car{}
	carEnt := carMapper.NewEntity(&tr, &car)

	crMapper := ecs.NewMap2[components.Transform, components.Crusher](w)
	start := rl.Vector3{X: 50, Y: 3, Z: 50}
	ctr := components.Transform{Position: start}
	cr := components.NewCrusher(start, 2.5, 1)
	crushEnt := crMapper.NewEntity(&ctr, &cr)

	return &triggerRig{
		sys:    NewTriggerSystem(w, zones),
		trMap:  ecs.NewMap1[components.Transform](w),
		carMap: ecs.NewMap1[components.Car](w),
		crMap:  ecs.NewMap1[components.Crusher](w),
		car:    carEnt,
		crush:  crushEnt,
	}
}

func TestTriggerOffroadEnterAndExit(t *testing.T) {
	zones := []Zone{{MinX: 10, MaxX: 20, MinZ: 10, MaxZ: 20}}
	r := newTriggerRig(t, zones)

	// Outside: flag stays clear
	r.sys.Update()
	if r.carMap.Get(r.car).OffRoad {
		t.Error("off-road flag set outside the zone")
	}

	// Entering sets the flag the same tick
	r.trMap.Get(r.car).Position = rl.Vector3{X: 15, Z: 15}
	r.sys.Update()
	if !r.carMap.Get(r.car).OffRoad {
		t.Error("off-road flag not set inside the zone")
	}

	// Leaving clears it immediately
	r.trMap.Get(r.car).Position = rl.Vector3{X: 25, Z: 15}
	r.sys.Update()
	if r.carMap.Get(r.car).OffRoad {
		t.Error("off-road flag did not clear on exit")
	}
}

func TestTriggerCrusherHitRequiresLowHead(t *testing.T) {
	r := newTriggerRig(t, nil)

	// Car parked under the crusher, head still raised: no hit
	r.trMap.Get(r.car).Position = rl.Vector3{X: 50, Z: 50}
	r.sys.Update()
	if r.carMap.Get(r.car).CrusherHit {
		t.Error("hit flagged with the head raised")
	}

	// Head descended to car height: hit
	r.crMap.Get(r.crush).Phase = components.CrusherMovingDown
	r.trMap.Get(r.crush).Position = rl.Vector3{X: 50, Y: 0.8, Z: 50}
	r.sys.Update()
	if !r.carMap.Get(r.car).CrusherHit {
		t.Error("no hit flagged with the head at car height")
	}

	// Same head height but car out from under it: no hit
	r.trMap.Get(r.car).Position = rl.Vector3{X: 56, Z: 50}
	r.sys.Update()
	if r.carMap.Get(r.car).CrusherHit {
		t.Error("hit flagged outside the hazard extents")
	}
}

package systems

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
)

// carRig bundles a world with a single spawned vehicle for handling tests.
type carRig struct {
	sys   *VehicleSystem
	inMap *ecs.Map1[components.DriveInput]
	trMap *ecs.Map1[components.Transform]
	bdMap *ecs.Map1[components.Car]
	vMap  *ecs.Map1[components.Body]
	e     ecs.Entity
}

func newCarRig(t *testing.T) *carRig {
	t.Helper()
	ensureConfig()

	w := ecs.NewWorld()
	mapper := ecs.NewMap4[components.Transform, components.Body, components.DriveInput, components.Car](w)

	tr := components.Transform{}
	body := components.Body{}
	in := components.DriveInput{}
	car := components.Car{}
	e := mapper.NewEntity(&tr, &body, &in, &car)

	return &carRig{
		sys:   NewVehicleSystem(w),
		inMap: ecs.NewMap1[components.DriveInput](w),
		trMap: ecs.NewMap1[components.Transform](w),
		bdMap: ecs.NewMap1[components.Car](w),
		vMap:  ecs.NewMap1[components.Body](w),
		e:     e,
	}
}

// forwardSpeed projects the car's velocity onto its heading.
func (r *carRig) forwardSpeed() float32 {
	tr := r.trMap.Get(r.e)
	return rl.Vector3DotProduct(r.vMap.Get(r.e).Velocity, tr.Forward())
}

func (r *carRig) lateralSpeed() float32 {
	tr := r.trMap.Get(r.e)
	return rl.Vector3DotProduct(r.vMap.Get(r.e).Velocity, tr.Right())
}

func TestVehicleAcceleratesToMaxForward(t *testing.T) {
	r := newCarRig(t)
	cfg := config.Cfg()

	r.inMap.Get(r.e).Throttle = 1
	for i := 0; i < 20*60; i++ {
		r.sys.Update(testDT)
		if s := float64(r.forwardSpeed()); s > cfg.Vehicle.MaxForwardSpeed+1e-4 {
			t.Fatalf("tick %d: speed %f exceeded max forward %f", i, s, cfg.Vehicle.MaxForwardSpeed)
		}
	}
	if s := float64(r.forwardSpeed()); math.Abs(s-cfg.Vehicle.MaxForwardSpeed) > 0.01 {
		t.Errorf("settled speed %f, want %f", s, cfg.Vehicle.MaxForwardSpeed)
	}
}

func TestVehicleFirstTickUsesAccelerationRate(t *testing.T) {
	r := newCarRig(t)
	cfg := config.Cfg()

	r.inMap.Get(r.e).Throttle = 1
	r.sys.Update(testDT)

	want := cfg.Vehicle.Acceleration * float64(testDT)
	if s := float64(r.forwardSpeed()); math.Abs(s-want) > 1e-4 {
		t.Errorf("speed after one tick %f, want %f", s, want)
	}
}

func TestVehicleBrakingUsesBrakingRate(t *testing.T) {
	r := newCarRig(t)
	cfg := config.Cfg()

	// Rolling at full speed, throttle released: the target shrinks to zero,
	// so the braking rate applies
	tr := r.trMap.Get(r.e)
	r.vMap.Get(r.e).Velocity = rl.Vector3Scale(tr.Forward(), float32(cfg.Vehicle.MaxForwardSpeed))

	r.sys.Update(testDT)

	want := cfg.Vehicle.MaxForwardSpeed - cfg.Vehicle.Braking*float64(testDT)
	if s := float64(r.forwardSpeed()); math.Abs(s-want) > 1e-4 {
		t.Errorf("speed after one braking tick %f, want %f", s, want)
	}
}

func TestVehicleReversesToMaxReverse(t *testing.T) {
	r := newCarRig(t)
	cfg := config.Cfg()

	r.inMap.Get(r.e).Throttle = -1
	for i := 0; i < 20*60; i++ {
		r.sys.Update(testDT)
	}
	if s := float64(r.forwardSpeed()); math.Abs(s+cfg.Vehicle.MaxReverseSpeed) > 0.01 {
		t.Errorf("settled reverse speed %f, want %f", s, -cfg.Vehicle.MaxReverseSpeed)
	}
}

func TestVehicleOffroadScalesTargetAndReverts(t *testing.T) {
	r := newCarRig(t)
	cfg := config.Cfg()
	scaled := cfg.Vehicle.MaxForwardSpeed * cfg.Vehicle.OffroadFactor

	r.inMap.Get(r.e).Throttle = 1
	r.bdMap.Get(r.e).OffRoad = true
	for i := 0; i < 20*60; i++ {
		r.sys.Update(testDT)
	}
	if s := float64(r.forwardSpeed()); math.Abs(s-scaled) > 0.01 {
		t.Errorf("off-road settled speed %f, want %f", s, scaled)
	}

	// Back on tarmac the very next tick accelerates again
	r.bdMap.Get(r.e).OffRoad = false
	before := float64(r.forwardSpeed())
	r.sys.Update(testDT)
	want := before + cfg.Vehicle.Acceleration*float64(testDT)
	if s := float64(r.forwardSpeed()); math.Abs(s-want) > 1e-4 {
		t.Errorf("first on-road tick speed %f, want %f", s, want)
	}
}

func TestVehicleOffroadEntryBrakesDown(t *testing.T) {
	r := newCarRig(t)
	cfg := config.Cfg()
	scaled := cfg.Vehicle.MaxForwardSpeed * cfg.Vehicle.OffroadFactor

	// At full speed, entering the zone shrinks the target, so the braking
	// rate pulls the car down to the scaled cap
	tr := r.trMap.Get(r.e)
	r.vMap.Get(r.e).Velocity = rl.Vector3Scale(tr.Forward(), float32(cfg.Vehicle.MaxForwardSpeed))
	r.inMap.Get(r.e).Throttle = 1
	r.bdMap.Get(r.e).OffRoad = true

	r.sys.Update(testDT)
	want := cfg.Vehicle.MaxForwardSpeed - cfg.Vehicle.Braking*float64(testDT)
	if s := float64(r.forwardSpeed()); math.Abs(s-want) > 1e-4 {
		t.Errorf("first off-road tick speed %f, want %f", s, want)
	}

	for i := 0; i < 20*60; i++ {
		r.sys.Update(testDT)
	}
	if s := float64(r.forwardSpeed()); math.Abs(s-scaled) > 0.01 {
		t.Errorf("off-road settled speed %f, want %f", s, scaled)
	}
}

func TestVehicleTurnDirectionFollowsSteer(t *testing.T) {
	r := newCarRig(t)
	cfg := config.Cfg()

	tr := r.trMap.Get(r.e)
	r.vMap.Get(r.e).Velocity = rl.Vector3Scale(tr.Forward(), float32(cfg.Vehicle.MaxForwardSpeed/2))
	r.inMap.Get(r.e).Throttle = 1
	r.inMap.Get(r.e).Steer = 1

	r.sys.Update(testDT)
	if r.trMap.Get(r.e).Yaw <= 0 {
		t.Errorf("steer right at forward speed should increase yaw, got %f", r.trMap.Get(r.e).Yaw)
	}
}

func TestVehicleTurnSignFlipsInReverse(t *testing.T) {
	r := newCarRig(t)
	cfg := config.Cfg()

	tr := r.trMap.Get(r.e)
	r.vMap.Get(r.e).Velocity = rl.Vector3Scale(tr.Forward(), float32(-cfg.Vehicle.MaxReverseSpeed))
	r.inMap.Get(r.e).Throttle = -1
	r.inMap.Get(r.e).Steer = 1

	r.sys.Update(testDT)
	if r.trMap.Get(r.e).Yaw >= 0 {
		t.Errorf("steer right while reversing should decrease yaw, got %f", r.trMap.Get(r.e).Yaw)
	}
}

func TestVehicleNoTurnBelowSpeedThreshold(t *testing.T) {
	r := newCarRig(t)

	// Nearly stationary: steering must not rotate the car in place
	tr := r.trMap.Get(r.e)
	r.vMap.Get(r.e).Velocity = rl.Vector3Scale(tr.Forward(), 0.1)
	r.inMap.Get(r.e).Steer = 1

	r.sys.Update(testDT)
	if r.trMap.Get(r.e).Yaw != 0 {
		t.Errorf("yaw changed below the turn threshold: %f", r.trMap.Get(r.e).Yaw)
	}
}

func TestVehicleGripBleedsLateralSlip(t *testing.T) {
	r := newCarRig(t)

	tr := r.trMap.Get(r.e)
	r.vMap.Get(r.e).Velocity = rl.Vector3Scale(tr.Right(), 5)

	prev := float64(5)
	for i := 0; i < 120; i++ {
		r.sys.Update(testDT)
		lat := math.Abs(float64(r.lateralSpeed()))
		if lat > prev+1e-5 {
			t.Fatalf("tick %d: lateral speed grew from %f to %f", i, prev, lat)
		}
		prev = lat
	}
	if prev > 0.05 {
		t.Errorf("lateral slip did not bleed off, still %f after 2s", prev)
	}
}

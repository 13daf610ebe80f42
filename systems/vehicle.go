package systems

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
)

// VehicleSystem converts discrete drive intents into the car's velocity and
// heading each physics tick. Longitudinal speed steps toward a target with
// asymmetric accelerate/brake rates, lateral speed bleeds off with grip, and
// yaw scales with the speed fraction so the car can't spin in place.
// Position integration is left to the physics system.
type VehicleSystem struct {
	filter ecs.Filter4[components.Transform, components.Body, components.DriveInput, components.Car]

	maxForward    float32
	maxReverse    float32
	accel         float32
	brake         float32
	grip          float32
	maxTurnRate   float32 // rad/s
	minTurnSpeed  float32
	offroadFactor float32
}

// NewVehicleSystem creates the vehicle system from the loaded config.
func NewVehicleSystem(w *ecs.World) *VehicleSystem {
	cfg := config.Cfg()
	return &VehicleSystem{
		filter:        *ecs.NewFilter4[components.Transform, components.Body, components.DriveInput, components.Car](w),
		maxForward:    float32(cfg.Vehicle.MaxForwardSpeed),
		maxReverse:    float32(cfg.Vehicle.MaxReverseSpeed),
		accel:         float32(cfg.Vehicle.Acceleration),
		brake:         float32(cfg.Vehicle.Braking),
		grip:          float32(cfg.Vehicle.Grip),
		maxTurnRate:   cfg.Derived.MaxTurnRateRad,
		minTurnSpeed:  float32(cfg.Vehicle.MinTurnSpeed),
		offroadFactor: float32(cfg.Vehicle.OffroadFactor),
	}
}

// Update advances every vehicle by one physics tick.
func (s *VehicleSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		tr, body, in, car := query.Get()

		forward := tr.Forward()
		right := tr.Right()

		// Decompose world velocity into the car's frame
		fwdSpeed := rl.Vector3DotProduct(body.Velocity, forward)
		latSpeed := rl.Vector3DotProduct(body.Velocity, right)

		// Target longitudinal speed from the throttle intent
		var target float32
		switch {
		case in.Throttle > 0:
			target = s.maxForward
		case in.Throttle < 0:
			target = -s.maxReverse
		}
		if car.OffRoad {
			target *= s.offroadFactor
		}

		// Growing speed magnitude uses the engine, shrinking uses the brakes
		rate := s.brake
		if absf(target) > absf(fwdSpeed) {
			rate = s.accel
		}
		fwdSpeed = stepTowards(fwdSpeed, target, rate*dt)

		// Grip bleeds off sideways slip
		latSpeed = lerp(latSpeed, 0, clamp01(s.grip*dt))

		// Recompose in the pre-rotation frame, then steer. The heading change
		// shows up as lateral slip next tick, which grip pulls back in line.
		body.Velocity = rl.Vector3Add(
			rl.Vector3Scale(forward, fwdSpeed),
			rl.Vector3Scale(right, latSpeed),
		)

		if in.Steer != 0 && absf(fwdSpeed) > s.minTurnSpeed {
			// Signed speed fraction flips the turn direction in reverse
			tr.Yaw += float32(in.Steer) * s.maxTurnRate * (fwdSpeed / s.maxForward) * dt
			tr.Yaw = normalizeAngle(tr.Yaw)
		}
	}
}

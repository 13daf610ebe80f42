package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
)

// PilotSystem writes drive intents that seek the next checkpoint. It stands
// in for keyboard input in headless runs and for the parameter tuner, and
// produces the same discrete intents a player would.
type PilotSystem struct {
	filter ecs.Filter3[components.Transform, components.DriveInput, components.CheckpointTracker]

	checkpoints   []Checkpoint
	steerDeadzone float32
	brakeAngle    float32
}

// NewPilotSystem creates the autopilot for the given gate list.
func NewPilotSystem(w *ecs.World, checkpoints []Checkpoint) *PilotSystem {
	cfg := config.Cfg()
	return &PilotSystem{
		filter:        *ecs.NewFilter3[components.Transform, components.DriveInput, components.CheckpointTracker](w),
		checkpoints:   checkpoints,
		steerDeadzone: cfg.Derived.SteerDeadzoneRad,
		brakeAngle:    cfg.Derived.BrakeAngleRad,
	}
}

// Update writes fresh intents for every piloted vehicle.
func (s *PilotSystem) Update() {
	if len(s.checkpoints) == 0 {
		return
	}

	query := s.filter.Query()
	for query.Next() {
		tr, in, track := query.Get()

		cp := s.checkpoints[track.Next]
		dx := cp.X - tr.Position.X
		dz := cp.Z - tr.Position.Z

		want := float32(math.Atan2(float64(dx), float64(dz)))
		err := normalizeAngle(want - tr.Yaw)

		// Positive error means the gate is to the right
		right := err > s.steerDeadzone
		left := err < -s.steerDeadzone

		// Throttle off while pointing badly wrong; grip and braking bring
		// the nose around faster than powering through
		forward := absf(err) < s.brakeAngle

		*in = components.MakeDriveInput(forward, false, left, right)
	}
}

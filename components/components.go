// Package components defines ECS components for the driving sandbox.
package components

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform represents an entity's world pose on the ground plane.
// Yaw is the rotation about the Y axis in radians; yaw 0 faces +Z.
type Transform struct {
	Position rl.Vector3
	Yaw      float32
}

// Forward returns the unit vector the entity is facing.
func (t *Transform) Forward() rl.Vector3 {
	sin, cos := math.Sincos(float64(t.Yaw))
	return rl.Vector3{X: float32(sin), Y: 0, Z: float32(cos)}
}

// Right returns the unit vector to the entity's right.
func (t *Transform) Right() rl.Vector3 {
	sin, cos := math.Sincos(float64(t.Yaw))
	return rl.Vector3{X: float32(cos), Y: 0, Z: float32(-sin)}
}

// Rotation returns the pose as a quaternion about the Y axis.
func (t *Transform) Rotation() rl.Quaternion {
	return rl.QuaternionFromAxisAngle(rl.Vector3{X: 0, Y: 1, Z: 0}, t.Yaw)
}

// Body holds the velocity integrated by the physics system each tick.
type Body struct {
	Velocity rl.Vector3
}

// DriveInput holds the discrete drive intents for one tick.
// Throttle and Steer are -1, 0 or +1 after opposing inputs cancel.
type DriveInput struct {
	Throttle int8 // +1 accelerate, -1 brake/reverse
	Steer    int8 // +1 right, -1 left
}

// MakeDriveInput builds a DriveInput from raw directional intents.
// Simultaneous opposing intents cancel to zero on that axis.
func MakeDriveInput(forward, reverse, left, right bool) DriveInput {
	var in DriveInput
	if forward && !reverse {
		in.Throttle = 1
	} else if reverse && !forward {
		in.Throttle = -1
	}
	if right && !left {
		in.Steer = 1
	} else if left && !right {
		in.Steer = -1
	}
	return in
}

// Car holds per-vehicle state beyond the shared transform and body.
type Car struct {
	OffRoad bool // Set while inside a tagged off-road zone

	// Hit flag written by the trigger system, consumed by the game's respawn
	CrusherHit bool
}

// CrusherPhase identifies the leg of the crusher's periodic cycle.
type CrusherPhase uint8

const (
	CrusherWaitingBeforeDown CrusherPhase = iota
	CrusherMovingDown
	CrusherWaitingBeforeUp
	CrusherMovingUp
)

// Crusher holds the periodic obstacle's travel state. Start and Down are
// fixed at spawn; the head shuttles between them with randomized dwells.
type Crusher struct {
	Start rl.Vector3
	Down  rl.Vector3
	Phase CrusherPhase
	Wait  float32 // Remaining dwell time for the waiting phases (s)
}

// NewCrusher derives the fixed travel endpoints from the rest position and
// the drop distance, starting in the first dwell.
func NewCrusher(start rl.Vector3, downDistance, initialWait float32) Crusher {
	return Crusher{
		Start: start,
		Down:  rl.Vector3{X: start.X, Y: start.Y - downDistance, Z: start.Z},
		Phase: CrusherWaitingBeforeDown,
		Wait:  initialWait,
	}
}

// Target returns the end of the crusher's current or next travel leg.
func (c *Crusher) Target() rl.Vector3 {
	switch c.Phase {
	case CrusherWaitingBeforeDown, CrusherMovingDown:
		return c.Down
	default:
		return c.Start
	}
}

// Descending reports whether the head is on its way down.
func (c *Crusher) Descending() bool {
	return c.Phase == CrusherMovingDown
}

// CheckpointTracker holds lap progress for a vehicle.
type CheckpointTracker struct {
	Next    int     // Index of the next checkpoint to cross
	Lap     int     // Completed laps
	LapTime float32 // Elapsed time in the current lap (s)
	BestLap float32 // Fastest completed lap (0 = none yet)
	LastLap float32 // Most recent completed lap (0 = none yet)
}

// Package camera provides a smoothed chase camera for following a target pose.
package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// upAxis is the world up vector; the ground plane is XZ.
var upAxis = rl.Vector3{X: 0, Y: 1, Z: 0}

// ChaseCamera follows a target transform from a fixed local-frame offset.
// Position tracking uses critically-damped smoothing so the camera settles
// on the desired point without overshoot; rotation tracking slerps toward
// the look-at rotation at a fixed angular rate.
type ChaseCamera struct {
	// Offset from the target in the target's local frame
	Offset rl.Vector3

	// SmoothTime is the position smoothing time constant (seconds)
	SmoothTime float32

	// RotateSpeed is the rotation tracking rate (radians/second)
	RotateSpeed float32

	// Current pose
	Position rl.Vector3
	Rotation rl.Quaternion

	// Smoothing velocity state
	velocity rl.Vector3
}

// New creates a chase camera with the given offset and smoothing parameters.
func New(offset rl.Vector3, smoothTime, rotateSpeed float32) *ChaseCamera {
	return &ChaseCamera{
		Offset:      offset,
		SmoothTime:  smoothTime,
		RotateSpeed: rotateSpeed,
		Rotation:    rl.QuaternionIdentity(),
	}
}

// Snap places the camera immediately at its desired pose for the target,
// clearing any smoothing velocity. Used on spawn and respawn.
func (c *ChaseCamera) Snap(targetPos rl.Vector3, targetRot rl.Quaternion) {
	c.Position = rl.Vector3Add(targetPos, rl.Vector3RotateByQuaternion(c.Offset, targetRot))
	c.velocity = rl.Vector3{}
	look := rl.Vector3Subtract(targetPos, c.Position)
	if rl.Vector3Length(look) > 1e-4 {
		c.Rotation = LookRotation(rl.Vector3Normalize(look))
	}
}

// Update advances the camera one frame toward the target pose.
func (c *ChaseCamera) Update(targetPos rl.Vector3, targetRot rl.Quaternion, dt float32) {
	if dt <= 0 {
		return
	}

	desired := rl.Vector3Add(targetPos, rl.Vector3RotateByQuaternion(c.Offset, targetRot))
	c.Position, c.velocity = SmoothDamp(c.Position, desired, c.velocity, c.SmoothTime, dt)

	// A degenerate look direction (camera on top of the target) leaves the
	// rotation as-is rather than producing garbage
	look := rl.Vector3Subtract(targetPos, c.Position)
	if rl.Vector3Length(look) > 1e-4 {
		want := LookRotation(rl.Vector3Normalize(look))
		amount := c.RotateSpeed * dt
		if amount > 1 {
			amount = 1
		}
		c.Rotation = rl.QuaternionSlerp(c.Rotation, want, amount)
	}
}

// LookDirection returns the unit vector the camera is facing.
func (c *ChaseCamera) LookDirection() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{X: 0, Y: 0, Z: 1}, c.Rotation)
}

// LookRotation builds the rotation that turns +Z onto the given unit
// direction: yaw about world Y, then pitch about local X.
func LookRotation(dir rl.Vector3) rl.Quaternion {
	yaw := float32(math.Atan2(float64(dir.X), float64(dir.Z)))
	y := dir.Y
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	pitch := float32(-math.Asin(float64(y)))

	qYaw := rl.QuaternionFromAxisAngle(upAxis, yaw)
	qPitch := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1, Y: 0, Z: 0}, pitch)
	return rl.QuaternionMultiply(qYaw, qPitch)
}

// SmoothDamp moves current toward target with critically-damped smoothing.
// vel carries the smoothing state between calls. The result never overshoots
// the target. This is the standard spring-damper approximation with a
// per-axis overshoot clamp.
func SmoothDamp(current, target, vel rl.Vector3, smoothTime, dt float32) (rl.Vector3, rl.Vector3) {
	if smoothTime < 1e-4 {
		smoothTime = 1e-4
	}
	omega := 2 / smoothTime
	x := omega * dt
	// Padé-style approximation of exp(-x), stable for large steps
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	var out, outVel rl.Vector3
	out.X, outVel.X = smoothDampAxis(current.X, target.X, vel.X, omega, decay, dt)
	out.Y, outVel.Y = smoothDampAxis(current.Y, target.Y, vel.Y, omega, decay, dt)
	out.Z, outVel.Z = smoothDampAxis(current.Z, target.Z, vel.Z, omega, decay, dt)
	return out, outVel
}

func smoothDampAxis(current, target, vel, omega, decay, dt float32) (float32, float32) {
	change := current - target
	temp := (vel + omega*change) * dt
	newVel := (vel - omega*temp) * decay
	newPos := target + (change+temp)*decay

	// Clamp: once past the target, settle exactly on it
	if (target > current) == (newPos > target) {
		newPos = target
		newVel = 0
	}
	return newPos, newVel
}

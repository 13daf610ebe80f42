package components

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestMakeDriveInputCancelsOpposingIntents(t *testing.T) {
	tests := []struct {
		name                          string
		forward, reverse, left, right bool
		wantThrottle, wantSteer       int8
	}{
		{"idle", false, false, false, false, 0, 0},
		{"forward", true, false, false, false, 1, 0},
		{"reverse", false, true, false, false, -1, 0},
		{"forward and reverse cancel", true, true, false, false, 0, 0},
		{"left", false, false, true, false, 0, -1},
		{"right", false, false, false, true, 0, 1},
		{"left and right cancel", false, false, true, true, 0, 0},
		{"all four cancel", true, true, true, true, 0, 0},
		{"forward right", true, false, false, true, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := MakeDriveInput(tt.forward, tt.reverse, tt.left, tt.right)
			if in.Throttle != tt.wantThrottle || in.Steer != tt.wantSteer {
				t.Errorf("got throttle=%d steer=%d, want throttle=%d steer=%d",
					in.Throttle, in.Steer, tt.wantThrottle, tt.wantSteer)
			}
		})
	}
}

func TestNewCrusherDownPosition(t *testing.T) {
	for _, d := range []float32{0.5, 2, 7.25} {
		start := rl.Vector3{X: 4, Y: 3, Z: -8}
		cr := NewCrusher(start, d, 1)

		if cr.Down.X != start.X || cr.Down.Z != start.Z {
			t.Errorf("d=%f: down position moved horizontally: %v", d, cr.Down)
		}
		if math.Abs(float64(cr.Down.Y-(start.Y-d))) > 1e-6 {
			t.Errorf("d=%f: down y = %f, want %f", d, cr.Down.Y, start.Y-d)
		}
		if cr.Phase != CrusherWaitingBeforeDown {
			t.Errorf("d=%f: new crusher should start waiting, got phase %d", d, cr.Phase)
		}
	}
}

func TestCrusherTargetFollowsPhase(t *testing.T) {
	cr := NewCrusher(rl.Vector3{Y: 3}, 2, 1)

	cr.Phase = CrusherMovingDown
	if cr.Target() != cr.Down {
		t.Error("descending crusher should target the down position")
	}
	cr.Phase = CrusherWaitingBeforeUp
	if cr.Target() != cr.Start {
		t.Error("crusher waiting at the bottom should target the start position")
	}
	cr.Phase = CrusherMovingUp
	if cr.Target() != cr.Start {
		t.Error("ascending crusher should target the start position")
	}
}

func TestTransformBasis(t *testing.T) {
	tests := []struct {
		yaw          float32
		wantF, wantR rl.Vector3
	}{
		{0, rl.Vector3{Z: 1}, rl.Vector3{X: 1}},
		{math.Pi / 2, rl.Vector3{X: 1}, rl.Vector3{Z: -1}},
		{math.Pi, rl.Vector3{Z: -1}, rl.Vector3{X: -1}},
	}

	for _, tt := range tests {
		tr := Transform{Yaw: tt.yaw}
		if rl.Vector3Distance(tr.Forward(), tt.wantF) > 1e-5 {
			t.Errorf("yaw %f: forward %v, want %v", tt.yaw, tr.Forward(), tt.wantF)
		}
		if rl.Vector3Distance(tr.Right(), tt.wantR) > 1e-5 {
			t.Errorf("yaw %f: right %v, want %v", tt.yaw, tr.Right(), tt.wantR)
		}
	}
}

func TestRotationMatchesYaw(t *testing.T) {
	tr := Transform{Yaw: 1.2}
	rotated := rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, tr.Rotation())
	if rl.Vector3Distance(rotated, tr.Forward()) > 1e-5 {
		t.Errorf("quaternion forward %v does not match basis forward %v", rotated, tr.Forward())
	}
}

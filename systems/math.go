package systems

import "math"

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float32) float32 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// stepTowards moves current toward target by at most maxDelta, never
// passing the target.
func stepTowards(current, target, maxDelta float32) float32 {
	diff := target - current
	if diff > maxDelta {
		return current + maxDelta
	}
	if diff < -maxDelta {
		return current - maxDelta
	}
	return target
}

// lerp interpolates linearly between a and b.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// distanceXZ returns the ground-plane distance between two points.
func distanceXZ(x1, z1, x2, z2 float32) float32 {
	dx := x1 - x2
	dz := z1 - z2
	return float32(math.Sqrt(float64(dx*dx + dz*dz)))
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

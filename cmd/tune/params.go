// Package main provides CMA-ES tuning of the car handling parameters.
package main

import (
	"github.com/kvellan/drift/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable handling parameters.
// Top speeds are locked so tuning changes how the car gets there, not
// the ceiling it reaches.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Vehicle
			{Name: "acceleration", Path: "vehicle.acceleration", Min: 4.0, Max: 30.0, Default: 12.0},
			{Name: "braking", Path: "vehicle.braking", Min: 8.0, Max: 50.0, Default: 22.0},
			{Name: "grip", Path: "vehicle.grip", Min: 1.0, Max: 15.0, Default: 6.0},
			{Name: "max_turn_rate", Path: "vehicle.max_turn_rate", Min: 40.0, Max: 240.0, Default: 120.0},
			{Name: "min_turn_speed", Path: "vehicle.min_turn_speed", Min: 0.1, Max: 3.0, Default: 0.5},
			// Pilot
			{Name: "steer_deadzone", Path: "pilot.steer_deadzone", Min: 1.0, Max: 15.0, Default: 5.0},
			{Name: "brake_angle", Path: "pilot.brake_angle", Min: 20.0, Max: 120.0, Default: 60.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Vehicle.Acceleration = clamped[0]
	cfg.Vehicle.Braking = clamped[1]
	cfg.Vehicle.Grip = clamped[2]
	cfg.Vehicle.MaxTurnRate = clamped[3]
	cfg.Vehicle.MinTurnSpeed = clamped[4]
	cfg.Pilot.SteerDeadzone = clamped[5]
	cfg.Pilot.BrakeAngle = clamped[6]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Vehicle.Acceleration,
		cfg.Vehicle.Braking,
		cfg.Vehicle.Grip,
		cfg.Vehicle.MaxTurnRate,
		cfg.Vehicle.MinTurnSpeed,
		cfg.Pilot.SteerDeadzone,
		cfg.Pilot.BrakeAngle,
	}
}

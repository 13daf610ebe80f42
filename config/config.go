// Package config provides configuration loading and access for the driving sandbox.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Vehicle   VehicleConfig   `yaml:"vehicle"`
	Crusher   CrusherConfig   `yaml:"crusher"`
	Chase     ChaseConfig     `yaml:"chase"`
	Pilot     PilotConfig     `yaml:"pilot"`
	Course    CourseConfig    `yaml:"course"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // Seconds per fixed simulation tick
}

// VehicleConfig holds the arcade car handling parameters.
type VehicleConfig struct {
	MaxForwardSpeed float64 `yaml:"max_forward_speed"` // m/s
	MaxReverseSpeed float64 `yaml:"max_reverse_speed"` // m/s, stored positive
	Acceleration    float64 `yaml:"acceleration"`      // m/s² toward a faster target
	Braking         float64 `yaml:"braking"`           // m/s² toward a slower target
	Grip            float64 `yaml:"grip"`              // Lateral velocity decay rate (1/s)
	MaxTurnRate     float64 `yaml:"max_turn_rate"`     // deg/s at full forward speed
	MinTurnSpeed    float64 `yaml:"min_turn_speed"`    // m/s below which steering is ignored
	OffroadFactor   float64 `yaml:"offroad_factor"`    // Target-speed multiplier while off-road
}

// CrusherConfig holds the periodic crusher obstacle parameters.
// Per-placement position comes from the course; these are shared tunables.
type CrusherConfig struct {
	Speed        float64 `yaml:"speed"`         // m/s base travel speed
	DownDistance float64 `yaml:"down_distance"` // Drop below the rest position (m)
	SlowDistance float64 `yaml:"slow_distance"` // Remaining distance where easing begins (m)
	MinFactor    float64 `yaml:"min_factor"`    // Speed factor at the target (0..1)
	MinWait      float64 `yaml:"min_wait"`      // Dwell bounds between legs (s)
	MaxWait      float64 `yaml:"max_wait"`
	RestHeight   float64 `yaml:"rest_height"`   // Height of the raised head above ground (m)
	HazardHalfW  float64 `yaml:"hazard_half_w"` // Hazard box half extents (m)
	HazardHalfH  float64 `yaml:"hazard_half_h"`
}

// ChaseConfig holds the follow-camera parameters.
type ChaseConfig struct {
	OffsetX     float64 `yaml:"offset_x"` // Offset in the target's local frame (m)
	OffsetY     float64 `yaml:"offset_y"`
	OffsetZ     float64 `yaml:"offset_z"`
	SmoothTime  float64 `yaml:"smooth_time"`  // Position smoothing time constant (s)
	RotateSpeed float64 `yaml:"rotate_speed"` // deg/s rotation tracking rate
}

// PilotConfig holds the checkpoint-seeking autopilot parameters.
type PilotConfig struct {
	SteerDeadzone float64 `yaml:"steer_deadzone"` // Heading error (deg) below which no steering
	BrakeAngle    float64 `yaml:"brake_angle"`    // Heading error (deg) above which throttle is cut
}

// SpawnConfig holds the vehicle spawn pose.
type SpawnConfig struct {
	X       float64 `yaml:"x"`
	Z       float64 `yaml:"z"`
	Heading float64 `yaml:"heading"` // Degrees, 0 = +Z
}

// PointConfig is a 2D ground-plane point.
type PointConfig struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// ZoneConfig is an axis-aligned ground rectangle (an off-road patch).
type ZoneConfig struct {
	X     float64 `yaml:"x"` // Center
	Z     float64 `yaml:"z"`
	Width float64 `yaml:"width"` // Full extents along X and Z
	Depth float64 `yaml:"depth"`
}

// CourseConfig holds the track layout.
type CourseConfig struct {
	Spawn            SpawnConfig   `yaml:"spawn"`
	CheckpointRadius float64       `yaml:"checkpoint_radius"`
	Checkpoints      []PointConfig `yaml:"checkpoints"`
	OffroadZones     []ZoneConfig  `yaml:"offroad_zones"`
	Crushers         []PointConfig `yaml:"crushers"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32             float32 // Physics.DT as float32
	ScreenW32        float32
	ScreenH32        float32
	MaxTurnRateRad   float32 // Vehicle.MaxTurnRate in rad/s
	RotateSpeedRad   float32 // Chase.RotateSpeed in rad/s
	SpawnHeadingRad  float32 // Course.Spawn.Heading in radians
	SteerDeadzoneRad float32
	BrakeAngleRad    float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Set installs a programmatically built configuration as the global one,
// re-running corrections and derived value computation. Used by tools that
// mutate parameters directly instead of loading a file.
func Set(cfg *Config) {
	cfg.applyCorrections()
	cfg.computeDerived()
	global = cfg
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyCorrections()
	cfg.computeDerived()

	return cfg, nil
}

// applyCorrections fixes self-correcting parameters before use.
func (c *Config) applyCorrections() {
	// Swapped dwell bounds are tolerated, not rejected
	if c.Crusher.MinWait > c.Crusher.MaxWait {
		c.Crusher.MinWait, c.Crusher.MaxWait = c.Crusher.MaxWait, c.Crusher.MinWait
	}

	// A non-positive slow-down distance would break the easing ramp
	if c.Crusher.SlowDistance <= 0 {
		c.Crusher.SlowDistance = 1.0
	}

	// Reverse speed is stored as a positive magnitude
	if c.Vehicle.MaxReverseSpeed < 0 {
		c.Vehicle.MaxReverseSpeed = -c.Vehicle.MaxReverseSpeed
	}
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	const degToRad = math.Pi / 180

	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.MaxTurnRateRad = float32(c.Vehicle.MaxTurnRate * degToRad)
	c.Derived.RotateSpeedRad = float32(c.Chase.RotateSpeed * degToRad)
	c.Derived.SpawnHeadingRad = float32(c.Course.Spawn.Heading * degToRad)
	c.Derived.SteerDeadzoneRad = float32(c.Pilot.SteerDeadzone * degToRad)
	c.Derived.BrakeAngleRad = float32(c.Pilot.BrakeAngle * degToRad)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

package systems

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "physics")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "input", Name: "Drive input", Description: "Autopilot or manual drive intents", Category: "input"})
	r.Register(SystemInfo{ID: "vehicle", Name: "Vehicle", Description: "Applies drive intents to velocity and heading", Category: "physics"})
	r.Register(SystemInfo{ID: "physics", Name: "Physics", Description: "Integrates velocities into positions", Category: "physics"})
	r.Register(SystemInfo{ID: "crusher", Name: "Crushers", Description: "Advances periodic obstacles", Category: "core"})
	r.Register(SystemInfo{ID: "triggers", Name: "Triggers", Description: "Detects zone and hazard overlap", Category: "core"})
	r.Register(SystemInfo{ID: "course", Name: "Course", Description: "Tracks checkpoints and lap times", Category: "core"})
	r.Register(SystemInfo{ID: "camera", Name: "Chase camera", Description: "Follows the car with smoothing", Category: "render"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Collects window statistics", Category: "observability"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns the info for a system ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// All returns every registered system in registration order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

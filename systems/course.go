package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
)

// Checkpoint is a ground-plane gate crossed by driving within its radius.
type Checkpoint struct {
	X, Z float32
}

// CheckpointsFromConfig builds the ordered checkpoint list from the course layout.
func CheckpointsFromConfig(points []config.PointConfig) []Checkpoint {
	out := make([]Checkpoint, 0, len(points))
	for _, p := range points {
		out = append(out, Checkpoint{X: float32(p.X), Z: float32(p.Z)})
	}
	return out
}

// CourseSystem tracks lap progress: checkpoints must be crossed in order,
// and crossing the last one closes the lap and records its time.
type CourseSystem struct {
	filter ecs.Filter2[components.Transform, components.CheckpointTracker]

	checkpoints []Checkpoint
	radius      float32
}

// NewCourseSystem creates the lap tracking system.
func NewCourseSystem(w *ecs.World, checkpoints []Checkpoint) *CourseSystem {
	cfg := config.Cfg()
	return &CourseSystem{
		filter:      *ecs.NewFilter2[components.Transform, components.CheckpointTracker](w),
		checkpoints: checkpoints,
		radius:      float32(cfg.Course.CheckpointRadius),
	}
}

// Checkpoints returns the ordered gate list.
func (s *CourseSystem) Checkpoints() []Checkpoint {
	return s.checkpoints
}

// Update advances lap timers and checkpoint progress by one tick.
func (s *CourseSystem) Update(dt float32) {
	if len(s.checkpoints) == 0 {
		return
	}

	query := s.filter.Query()
	for query.Next() {
		tr, track := query.Get()

		track.LapTime += dt

		cp := s.checkpoints[track.Next]
		if distanceXZ(tr.Position.X, tr.Position.Z, cp.X, cp.Z) > s.radius {
			continue
		}

		track.Next++
		if track.Next < len(s.checkpoints) {
			continue
		}

		// Lap closed
		track.Next = 0
		track.Lap++
		track.LastLap = track.LapTime
		if track.BestLap == 0 || track.LapTime < track.BestLap {
			track.BestLap = track.LapTime
		}
		track.LapTime = 0
	}
}

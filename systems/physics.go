package systems

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/components"
)

// PhysicsSystem integrates body velocities into positions. It stands in for
// the rigid-body integrator the behaviors delegate to: the vehicle system
// only writes velocity and heading, this system moves the transform.
type PhysicsSystem struct {
	filter ecs.Filter2[components.Transform, components.Body]
}

// NewPhysicsSystem creates the physics integrator.
func NewPhysicsSystem(w *ecs.World) *PhysicsSystem {
	return &PhysicsSystem{
		filter: *ecs.NewFilter2[components.Transform, components.Body](w),
	}
}

// Update advances every body by one tick.
func (s *PhysicsSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		tr, body := query.Get()

		tr.Position = rl.Vector3Add(tr.Position, rl.Vector3Scale(body.Velocity, dt))

		// Bodies ride on the ground plane
		if tr.Position.Y < 0 {
			tr.Position.Y = 0
			if body.Velocity.Y < 0 {
				body.Velocity.Y = 0
			}
		}
	}
}

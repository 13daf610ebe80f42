package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/kvellan/drift/components"
	"github.com/kvellan/drift/config"
)

// vehicleClearance is the height a crusher head must drop below to strike
// a car underneath it.
const vehicleClearance = 1.2

// Zone is an axis-aligned ground rectangle tagged as off-road.
type Zone struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// Contains reports whether a ground point lies inside the zone.
func (z Zone) Contains(x, zz float32) bool {
	return x >= z.MinX && x <= z.MaxX && zz >= z.MinZ && zz <= z.MaxZ
}

// ZonesFromConfig builds trigger zones from the course layout.
func ZonesFromConfig(zones []config.ZoneConfig) []Zone {
	out := make([]Zone, 0, len(zones))
	for _, zc := range zones {
		hw := float32(zc.Width) / 2
		hd := float32(zc.Depth) / 2
		out = append(out, Zone{
			MinX: float32(zc.X) - hw,
			MaxX: float32(zc.X) + hw,
			MinZ: float32(zc.Z) - hd,
			MaxZ: float32(zc.Z) + hd,
		})
	}
	return out
}

// TriggerSystem detects vehicle overlap with course volumes each tick:
// off-road zones set the car's off-road flag, descending crusher heads that
// reach car height set the hit flag. Both take effect the tick the overlap
// starts and clear the tick it ends; the game reacts to the transitions.
type TriggerSystem struct {
	cars     ecs.Filter2[components.Transform, components.Car]
	crushers ecs.Filter2[components.Transform, components.Crusher]

	zones       []Zone
	hazardHalfW float32
	hazardHalfH float32
}

// NewTriggerSystem creates the trigger system for the given zones.
func NewTriggerSystem(w *ecs.World, zones []Zone) *TriggerSystem {
	cfg := config.Cfg()
	return &TriggerSystem{
		cars:        *ecs.NewFilter2[components.Transform, components.Car](w),
		crushers:    *ecs.NewFilter2[components.Transform, components.Crusher](w),
		zones:       zones,
		hazardHalfW: float32(cfg.Crusher.HazardHalfW),
		hazardHalfH: float32(cfg.Crusher.HazardHalfH),
	}
}

// Update refreshes every car's trigger-volume membership.
func (s *TriggerSystem) Update() {
	// Snapshot crusher head positions once per tick
	type head struct {
		x, y, z float32
		low     bool
	}
	var heads []head
	cq := s.crushers.Query()
	for cq.Next() {
		tr, cr := cq.Get()
		heads = append(heads, head{
			x:   tr.Position.X,
			y:   tr.Position.Y,
			z:   tr.Position.Z,
			low: tr.Position.Y < vehicleClearance && cr.Phase != components.CrusherWaitingBeforeDown,
		})
	}

	query := s.cars.Query()
	for query.Next() {
		tr, car := query.Get()

		inside := false
		for _, z := range s.zones {
			if z.Contains(tr.Position.X, tr.Position.Z) {
				inside = true
				break
			}
		}
		car.OffRoad = inside

		hit := false
		for _, h := range heads {
			if !h.low {
				continue
			}
			if absf(tr.Position.X-h.x) <= s.hazardHalfW && absf(tr.Position.Z-h.z) <= s.hazardHalfH {
				hit = true
				break
			}
		}
		car.CrusherHit = hit
	}
}

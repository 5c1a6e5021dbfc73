package behavior

import (
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// Agent represents a single boid in the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" corresponds to a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
//
// Fields are exported so a renderer can read them between ticks.
type Agent struct {
	ID       uint64            `json:"id"`
	Position geometry.Vector2D `json:"position"`
	Velocity geometry.Vector2D `json:"velocity"`
}

// BoundaryMode selects how ContainBoundary reacts near an edge.
type BoundaryMode string

const (
	// BoundaryNudge adds the rebound speed to the velocity component (smooth turn).
	BoundaryNudge BoundaryMode = "nudge"
	// BoundarySet overwrites the velocity component with the rebound speed.
	BoundarySet BoundaryMode = "set"
)

// Settings is the snapshot of flocking parameters read during one tick.
// Passing it by value into the rules keeps every agent of a tick on the same values.
type Settings struct {
	CohesionFactor    float64 // Cohesion strength
	TooCloseMagnitude float64 // Separation threshold distance
	AlignmentFactor   float64 // Alignment strength

	MaxSpeed     float64
	ReboundSpeed float64 // Velocity bias applied near an edge
	Footprint    float64 // Side of the drawn square, also the edge margin

	ViewportWidth  float64
	ViewportHeight float64

	Boundary BoundaryMode
}

// ContainBoundary biases the velocity back toward the viewport when the agent is
// within Footprint of an edge. The position itself is never clamped, agents drift
// back over the following ticks.
func (a *Agent) ContainBoundary(s Settings) {
	margin := s.Footprint

	if a.Position.X < margin {
		a.Velocity.X = rebound(a.Velocity.X, s.ReboundSpeed, s.Boundary)
	} else if a.Position.X > s.ViewportWidth-margin {
		a.Velocity.X = rebound(a.Velocity.X, -s.ReboundSpeed, s.Boundary)
	}

	if a.Position.Y < margin {
		a.Velocity.Y = rebound(a.Velocity.Y, s.ReboundSpeed, s.Boundary)
	} else if a.Position.Y > s.ViewportHeight-margin {
		a.Velocity.Y = rebound(a.Velocity.Y, -s.ReboundSpeed, s.Boundary)
	}
}

func rebound(current, speed float64, mode BoundaryMode) float64 {
	if mode == BoundarySet {
		return speed
	}
	return current + speed
}

package behavior

import (
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// Cohesion steers self toward the center of mass of the other agents.
// Returns the zero vector when self is alone.
func Cohesion(self Agent, flock []Agent, s Settings) geometry.Vector2D {
	center := geometry.Zero
	others := 0
	for _, other := range flock {
		if other.ID == self.ID {
			continue
		}
		center = center.Add(other.Position)
		others++
	}
	if others == 0 {
		return geometry.Zero
	}
	return center.Mul(1 / float64(others)).Sub(self.Position).Mul(s.CohesionFactor)
}

// Separation pushes self away from every other agent strictly closer than
// TooCloseMagnitude. Contributions are summed, not averaged, so crowding
// produces a stronger push.
func Separation(self Agent, flock []Agent, s Settings) geometry.Vector2D {
	push := geometry.Zero
	for _, other := range flock {
		if other.ID == self.ID {
			continue
		}
		away := self.Position.Sub(other.Position)
		if away.Len() < s.TooCloseMagnitude {
			push = push.Add(away)
		}
	}
	return push
}

// Alignment nudges self toward the flock velocity. The sum of the other agents'
// velocities is divided by the whole flock size, so the pull weakens as the flock grows.
func Alignment(self Agent, flock []Agent, s Settings) geometry.Vector2D {
	sum := geometry.Zero
	others := 0
	for _, other := range flock {
		if other.ID == self.ID {
			continue
		}
		sum = sum.Add(other.Velocity)
		others++
	}
	if others == 0 {
		return geometry.Zero
	}
	return sum.Mul(1 / float64(len(flock))).Mul(s.AlignmentFactor)
}

// Steering is the combined contribution of the three rules.
// A non-finite result (e.g. from NaN parameters) collapses to zero so a bad
// input freezes the steering instead of corrupting the agent.
func Steering(self Agent, flock []Agent, s Settings) geometry.Vector2D {
	steer := Cohesion(self, flock, s).
		Add(Separation(self, flock, s)).
		Add(Alignment(self, flock, s))
	if !steer.IsFinite() {
		return geometry.Zero
	}
	return steer
}

package simulation

import (
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
)

// Step computes one tick for the whole flock.
// Every agent is evaluated against cur only, and the results are written to next,
// so the visiting order never changes the outcome. next must have len(cur).
//
// For each agent: steering from the three rules, speed cap, move, boundary
// containment on the new position, then the cap again so containment cannot
// push an agent past MaxSpeed.
func Step(cur, next []behavior.Agent, s behavior.Settings) {
	if len(next) != len(cur) {
		panic("simulation: Step buffers differ in length")
	}
	for i, self := range cur {
		steer := behavior.Steering(self, cur, s)

		moved := self
		moved.Velocity = self.Velocity.Add(steer).Limit(s.MaxSpeed)
		moved.Position = self.Position.Add(moved.Velocity)
		moved.ContainBoundary(s)
		moved.Velocity = moved.Velocity.Limit(s.MaxSpeed)

		next[i] = moved
	}
}

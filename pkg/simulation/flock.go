package simulation

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// IDAllocator hands out agent ids from a monotonically increasing counter.
// One allocator lives as long as its Loop, so ids are never reused across resets.
// The zero value is ready to use; the first id is 1.
type IDAllocator struct {
	last uint64
}

// Next returns a fresh id.
func (a *IDAllocator) Next() uint64 {
	a.last++
	return a.last
}

// NewAgent builds an agent with a fresh id. Pass geometry.Zero for a default vector.
func (a *IDAllocator) NewAgent(position, velocity geometry.Vector2D) behavior.Agent {
	return behavior.Agent{ID: a.Next(), Position: position, Velocity: velocity}
}

// Flock is the ordered set of agents of one run.
// It keeps a second buffer of the same length so a tick can be computed
// entirely from the pre-tick state and swapped in at the end.
type Flock struct {
	agents []behavior.Agent
	next   []behavior.Agent
}

// NewFlock wraps an existing agent list. The slice is copied.
func NewFlock(agents []behavior.Agent) *Flock {
	f := &Flock{
		agents: make([]behavior.Agent, len(agents)),
		next:   make([]behavior.Agent, len(agents)),
	}
	copy(f.agents, agents)
	return f
}

// SpawnFlock creates count agents uniformly spread inside the viewport, inset by the
// footprint, with velocity components uniform in [-initialSpeed, initialSpeed).
func SpawnFlock(ids *IDAllocator, rng *rand.Rand, cfg Config) *Flock {
	agents := make([]behavior.Agent, cfg.AgentCount)

	inset := cfg.Footprint
	spanX := cfg.ViewportWidth - 2*inset
	spanY := cfg.ViewportHeight - 2*inset
	if spanX < 0 {
		inset, spanX = 0, cfg.ViewportWidth
	}
	if spanY < 0 {
		spanY = cfg.ViewportHeight
	}

	for i := range agents {
		pos := geometry.NewVector(inset+rng.Float64()*spanX, inset+rng.Float64()*spanY)
		vel := geometry.NewVector(
			(rng.Float64()*2-1)*cfg.InitialSpeed,
			(rng.Float64()*2-1)*cfg.InitialSpeed,
		)
		agents[i] = ids.NewAgent(pos, vel)
	}
	return &Flock{agents: agents, next: make([]behavior.Agent, len(agents))}
}

// Len is the number of agents.
func (f *Flock) Len() int { return len(f.agents) }

// Agents exposes the committed state. Callers must not modify it.
func (f *Flock) Agents() []behavior.Agent { return f.agents }

// Copy returns an independent copy of the committed state.
func (f *Flock) Copy() []behavior.Agent {
	out := make([]behavior.Agent, len(f.agents))
	copy(out, f.agents)
	return out
}

// Advance runs one integration step and swaps the buffers.
func (f *Flock) Advance(s behavior.Settings) {
	Step(f.agents, f.next, s)
	f.agents, f.next = f.next, f.agents
}

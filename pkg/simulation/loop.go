package simulation

import (
	"math/rand/v2"
	"time"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	golog "github.com/tochemey/goakt/v3/log"
)

// State of a Loop.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Sink receives the flock once per committed tick.
// The slice is only valid during the call; copy it to keep it.
type Sink interface {
	Render(agents []behavior.Agent, s behavior.Settings)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(agents []behavior.Agent, s behavior.Settings)

// Render calls f.
func (f SinkFunc) Render(agents []behavior.Agent, s behavior.Settings) { f(agents, s) }

// Snapshot is an independent copy of the flock after a tick.
type Snapshot struct {
	Run      uint64
	Tick     uint64
	Agents   []behavior.Agent
	Settings behavior.Settings
}

// ChannelSink pushes a Snapshot copy to a channel without ever blocking the loop:
// when the receiver is busy the frame is dropped.
type ChannelSink struct {
	loop *Loop
	ch   chan<- Snapshot
}

// NewChannelSink builds a sink reporting the run and tick numbers of l.
func NewChannelSink(l *Loop, ch chan<- Snapshot) *ChannelSink {
	return &ChannelSink{loop: l, ch: ch}
}

// Render implements Sink.
func (c *ChannelSink) Render(agents []behavior.Agent, s behavior.Settings) {
	snap := Snapshot{
		Run:      c.loop.Run(),
		Tick:     c.loop.Ticks(),
		Agents:   append([]behavior.Agent(nil), agents...),
		Settings: s,
	}
	select {
	case c.ch <- snap:
	default:
		// UI busy, skip frame
	}
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger, golog.DiscardLogger by default.
func WithLogger(l golog.Logger) Option {
	return func(loop *Loop) { loop.logger = l }
}

// WithSink sets the render sink called after each committed tick.
func WithSink(s Sink) Option {
	return func(loop *Loop) { loop.sink = s }
}

// Loop is the simulation context: it owns the flock, the parameters, the id
// allocator and the tick pacing of one host. It is driven from a single goroutine
// (an actor mailbox or a Runner) and takes no locks.
type Loop struct {
	cfg    Config
	state  State
	flock  *Flock
	ids    IDAllocator
	rng    *rand.Rand
	seeded bool

	last  time.Time
	run   uint64
	ticks uint64

	sink   Sink
	logger golog.Logger
}

// NewLoop creates an Idle loop. cfg is sanitized.
func NewLoop(cfg Config, opts ...Option) *Loop {
	l := &Loop{logger: golog.DiscardLogger}
	for _, opt := range opts {
		opt(l)
	}
	l.setConfig(cfg)
	if l.cfg.Seed != 0 {
		l.rng = rand.New(rand.NewPCG(uint64(l.cfg.Seed), 0))
		l.seeded = true
	}
	return l
}

// SetSink replaces the render sink. Pass nil to disable rendering.
func (l *Loop) SetSink(s Sink) { l.sink = s }

// SetLogger replaces the logger.
func (l *Loop) SetLogger(logger golog.Logger) { l.logger = logger }

// Start moves the loop to Running with a fresh flock. It is the same transition as Reset.
func (l *Loop) Start(now time.Time) { l.Reset(now) }

// Reset discards the current flock and starts a new run with a freshly randomized
// batch of agents, measuring the next tick interval from now.
func (l *Loop) Reset(now time.Time) {
	if !l.seeded {
		l.rng = rand.New(rand.NewPCG(uint64(now.UnixNano()), l.run))
	}
	l.flock = SpawnFlock(&l.ids, l.rng, l.cfg)
	l.last = now
	l.run++
	l.ticks = 0
	l.state = Running
	l.logger.Infof("flock run %d started with %d agents", l.run, l.flock.Len())
}

// Stop moves the loop to Idle and discards the flock.
func (l *Loop) Stop() {
	if l.state == Idle {
		return
	}
	l.logger.Infof("flock run %d stopped after %d ticks", l.run, l.ticks)
	l.state = Idle
	l.flock = nil
}

// Tick advances the simulation by one step when at least one tick interval has
// elapsed since the previous committed tick. It reports whether it advanced.
// The remainder of the elapsed time is carried forward so pacing does not drift,
// and missed intervals are not replayed.
func (l *Loop) Tick(now time.Time) bool {
	if l.state != Running {
		return false
	}
	interval := l.cfg.TickInterval()
	elapsed := now.Sub(l.last)
	if elapsed < interval {
		return false
	}
	l.last = now.Add(-(elapsed % interval))

	settings := l.cfg.Settings()
	l.flock.Advance(settings)
	l.ticks++

	if l.sink != nil {
		l.sink.Render(l.flock.Agents(), settings)
	}
	return true
}

// Config returns the current parameters.
func (l *Loop) Config() Config { return l.cfg }

// SetConfig replaces the parameters. Flocking values apply from the next tick,
// population values from the next Reset.
func (l *Loop) SetConfig(cfg Config) { l.setConfig(cfg) }

// ApplyOverrides updates individual parameters by JSON name, see Config.ApplyOverrides.
// Known keys are applied even if the returned error reports unknown ones.
func (l *Loop) ApplyOverrides(overrides map[string]float64) error {
	cfg, err := l.cfg.ApplyOverrides(overrides)
	l.setConfig(cfg)
	return err
}

func (l *Loop) setConfig(cfg Config) {
	clean, fixed := cfg.Sanitize()
	if len(fixed) > 0 {
		l.logger.Warnf("clamped out of range parameters: %v", fixed)
	}
	l.cfg = clean
}

// State returns Idle or Running.
func (l *Loop) State() State { return l.state }

// Run is the number of the current run, 0 before the first Start.
func (l *Loop) Run() uint64 { return l.run }

// Ticks is the number of committed ticks in the current run.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Agents returns a copy of the current flock, nil when Idle.
func (l *Loop) Agents() []behavior.Agent {
	if l.flock == nil {
		return nil
	}
	return l.flock.Copy()
}

// Snapshot returns a copy of the current state.
func (l *Loop) Snapshot() Snapshot {
	return Snapshot{Run: l.run, Tick: l.ticks, Agents: l.Agents(), Settings: l.cfg.Settings()}
}

package simulation

import (
	"context"
	"sync"
	"time"

	golog "github.com/tochemey/goakt/v3/log"
)

// Clock provides the wall-clock time used to pace ticks.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current time with its monotonic reading.
func (SystemClock) Now() time.Time { return time.Now() }

// Runner drives a Loop from its own goroutine when no frame scheduler is available:
// it wakes every Frame, asks the loop to tick and applies parameter changes and
// resets between wake-ups.
type Runner struct {
	loop   *Loop
	clock  Clock
	frame  time.Duration
	logger golog.Logger

	overrides chan map[string]float64
	resets    chan struct{}
	done      chan struct{}
	doneOnce  sync.Once
}

// NewRunner wires a loop to a clock. frame is the wake-up period of the scheduler,
// typically the display refresh period; it defaults to 1/60 s.
func NewRunner(loop *Loop, clock Clock, frame time.Duration, logger golog.Logger) *Runner {
	if frame <= 0 {
		frame = time.Second / 60
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = golog.DiscardLogger
	}
	return &Runner{
		loop:      loop,
		clock:     clock,
		frame:     frame,
		logger:    logger,
		overrides: make(chan map[string]float64, 16),
		resets:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Update queues parameter overrides for the next tick boundary. It never blocks:
// it reports false when Run has returned or the queue is full.
func (r *Runner) Update(overrides map[string]float64) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.overrides <- overrides:
		return true
	default:
		r.logger.Warnf("parameter queue full, dropping %d overrides", len(overrides))
		return false
	}
}

// Reset queues a reset. Several requests before the next wake-up collapse into one.
func (r *Runner) Reset() {
	select {
	case r.resets <- struct{}{}:
	default:
	}
}

// Run starts the loop and blocks until ctx is done, then stops it.
// It returns the number of committed ticks of the last run.
// A Runner runs once: Update is refused after Run returns.
func (r *Runner) Run(ctx context.Context) uint64 {
	ticker := time.NewTicker(r.frame)
	defer ticker.Stop()
	defer r.doneOnce.Do(func() { close(r.done) })

	r.loop.Start(r.clock.Now())
	for {
		select {
		case <-ctx.Done():
			ticks := r.loop.Ticks()
			r.loop.Stop()
			return ticks
		case o := <-r.overrides:
			if err := r.loop.ApplyOverrides(o); err != nil {
				r.logger.Warnf("ignoring parameters: %v", err)
			}
		case <-r.resets:
			r.loop.Reset(r.clock.Now())
		case <-ticker.C:
			r.loop.Tick(r.clock.Now())
		}
	}
}

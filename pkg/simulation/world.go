package simulation

import (
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// FlockActor owns a Loop inside a goakt actor. The mailbox serializes frames,
// resets and parameter updates, so the loop never sees two of them at once and a
// reset always lands between two ticks.
type FlockActor struct {
	loop  *Loop
	clock Clock

	// --- Benchmark Stats ---
	frames      int
	ticks       int
	lastLogTime time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor creates the actor. When snapshotCh is not nil every committed tick
// is pushed to it without blocking. A nil clock means SystemClock.
func NewFlockActor(cfg Config, snapshotCh chan<- Snapshot, clock Clock) *FlockActor {
	if clock == nil {
		clock = SystemClock{}
	}
	loop := NewLoop(cfg)
	if snapshotCh != nil {
		loop.SetSink(NewChannelSink(loop, snapshotCh))
	}
	return &FlockActor{loop: loop, clock: clock}
}

// PreStart hooks the loop to the actor system logger.
func (w *FlockActor) PreStart(ctx *actor.Context) error {
	w.loop.SetLogger(ctx.ActorSystem().Logger())
	w.lastLogTime = w.clock.Now()
	return nil
}

// Receive handles one message at a time.
func (w *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Info("Flock actor started. Spawning agents...")
		w.loop.Start(w.clock.Now())

	case *timestamppb.Timestamp:
		w.frames++
		if w.loop.Tick(msg.AsTime()) {
			w.ticks++
		}
		w.logBenchmarks(ctx.Logger())

	case *emptypb.Empty:
		ctx.Logger().Infof("Reset requested after %d ticks", w.loop.Ticks())
		w.loop.Reset(w.clock.Now())

	case *structpb.Struct:
		overrides, invalid := overridesFromProto(msg)
		if len(invalid) > 0 {
			ctx.Logger().Warnf("ignoring non numeric parameters: %v", invalid)
		}
		if err := w.loop.ApplyOverrides(overrides); err != nil {
			ctx.Logger().Warnf("parameter update: %v", err)
		}

	case *wrapperspb.StringValue:
		if msg.GetValue() != statsQuery {
			ctx.Unhandled()
			return
		}
		ctx.Response(w.stats().toProto())

	default:
		ctx.Unhandled()
	}
}

// PostStop stops the loop.
func (w *FlockActor) PostStop(ctx *actor.Context) error {
	w.loop.Stop()
	ctx.ActorSystem().Logger().Info("Flock actor is shutdown...")
	return nil
}

func (w *FlockActor) stats() Stats {
	n := 0
	if w.loop.flock != nil {
		n = w.loop.flock.Len()
	}
	return Stats{
		State:  w.loop.State().String(),
		Run:    w.loop.Run(),
		Ticks:  w.loop.Ticks(),
		Agents: n,
	}
}

func (w *FlockActor) logBenchmarks(logger golog.Logger) {
	now := w.clock.Now()
	if now.Sub(w.lastLogTime) >= time.Second {
		logger.Debugf("📊 FRAME RATE: %d/sec | TICK RATE: %d/sec | Agents: %d",
			w.frames, w.ticks, w.stats().Agents)
		w.frames = 0
		w.ticks = 0
		w.lastLogTime = now
	}
}

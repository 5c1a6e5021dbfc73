package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func startFlockActor(t *testing.T, cfg Config, snapshotCh chan Snapshot) (context.Context, *actor.PID) {
	t.Helper()
	ctx := context.Background()

	system, err := actor.NewActorSystem("FlockTest",
		actor.WithLogger(golog.DiscardLogger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		t.Fatalf("NewActorSystem: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = system.Stop(ctx) })

	pid, err := system.Spawn(ctx, "flock", NewFlockActor(cfg, snapshotCh, fixedClock{now: t0}))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	return ctx, pid
}

func askStats(t *testing.T, ctx context.Context, pid *actor.PID) Stats {
	t.Helper()
	resp, err := actor.Ask(ctx, pid, NewStatsRequest(), time.Second)
	if err != nil {
		t.Fatalf("Ask stats: %v", err)
	}
	stats, err := ParseStats(resp)
	if err != nil {
		t.Fatal(err)
	}
	return stats
}

func TestFlockActor_TickAndSnapshot(t *testing.T) {
	cfg := *DefaultConfig()
	cfg.AgentCount = 30
	snapshots := make(chan Snapshot, 4)
	ctx, pid := startFlockActor(t, cfg, snapshots)

	if s := askStats(t, ctx, pid); s.State != "running" || s.Run != 1 || s.Agents != 30 {
		t.Fatalf("stats after start = %+v", s)
	}

	if err := actor.Tell(ctx, pid, NewTick(t0.Add(time.Second))); err != nil {
		t.Fatalf("Tell tick: %v", err)
	}
	// too early, no tick committed
	if err := actor.Tell(ctx, pid, NewTick(t0.Add(time.Second+time.Millisecond))); err != nil {
		t.Fatalf("Tell tick: %v", err)
	}

	select {
	case snap := <-snapshots:
		if snap.Tick != 1 || len(snap.Agents) != 30 {
			t.Errorf("snapshot tick=%d agents=%d; want 1 and 30", snap.Tick, len(snap.Agents))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot received")
	}

	if s := askStats(t, ctx, pid); s.Ticks != 1 {
		t.Errorf("ticks = %d; want 1", s.Ticks)
	}
}

func TestFlockActor_ParametersAndReset(t *testing.T) {
	cfg := *DefaultConfig()
	cfg.AgentCount = 10
	ctx, pid := startFlockActor(t, cfg, nil)

	params, err := NewParameters(map[string]float64{"agentCount": 4, "nonsense": 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := actor.Tell(ctx, pid, params); err != nil {
		t.Fatalf("Tell parameters: %v", err)
	}
	// population changes only show after a reset
	if s := askStats(t, ctx, pid); s.Agents != 10 {
		t.Errorf("agents before reset = %d; want 10", s.Agents)
	}

	if err := actor.Tell(ctx, pid, NewReset()); err != nil {
		t.Fatalf("Tell reset: %v", err)
	}
	s := askStats(t, ctx, pid)
	if s.Run != 2 || s.Ticks != 0 || s.Agents != 4 {
		t.Errorf("stats after reset = %+v; want run 2, 0 ticks, 4 agents", s)
	}
}

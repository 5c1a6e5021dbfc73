package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/cli"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/spf13/cobra"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		flags    cli.Flags
		duration time.Duration
		frame    time.Duration
	)
	cmd := &cobra.Command{
		Use:           "headless",
		Short:         "Run the flock without a window and log its progress",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.Config(cmd)
			if err != nil {
				return err
			}
			logger, err := cli.NewLogger(flags.LogLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			run(ctx, cfg, frame, logger)
			return nil
		},
	}
	flags.Register(cmd)
	cmd.Flags().DurationVarP(&duration, "duration", "d", 10*time.Second, "how long to run, 0 until interrupted")
	cmd.Flags().DurationVar(&frame, "frame", time.Second/60, "scheduler wake-up period")
	return cmd
}

func run(ctx context.Context, cfg simulation.Config, frame time.Duration, logger golog.Logger) {
	var (
		lastLog  time.Time
		sinceLog int
	)
	report := simulation.SinkFunc(func(agents []behavior.Agent, s behavior.Settings) {
		sinceLog++
		now := time.Now()
		if now.Sub(lastLog) < time.Second {
			return
		}
		center, speed := summarize(agents)
		logger.Infof("📊 TICK RATE: %d/sec | Agents: %d | center %v | mean speed %.2f",
			sinceLog, len(agents), center, speed)
		sinceLog = 0
		lastLog = now
	})

	loop := simulation.NewLoop(cfg, simulation.WithLogger(logger), simulation.WithSink(report))
	runner := simulation.NewRunner(loop, simulation.SystemClock{}, frame, logger)

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go resetOnSignal(ctx, hup, runner.Reset, logger)

	start := time.Now()
	lastLog = start
	ticks := runner.Run(ctx)
	elapsed := time.Since(start)
	logger.Infof("%d ticks in %v (%.1f/sec)", ticks, elapsed.Round(time.Millisecond), float64(ticks)/elapsed.Seconds())
}

// resetOnSignal calls reset for every signal received until ctx is done.
func resetOnSignal(ctx context.Context, sig <-chan os.Signal, reset func(), logger golog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-sig:
			logger.Infof("%v received, respawning the flock", s)
			reset()
		}
	}
}

// summarize returns the center of mass and the mean speed of the flock.
func summarize(agents []behavior.Agent) (geometry.Vector2D, float64) {
	if len(agents) == 0 {
		return geometry.Zero, 0
	}
	var sum geometry.Vector2D
	var speed float64
	for _, a := range agents {
		sum = sum.Add(a.Position)
		speed += a.Velocity.Len()
	}
	n := float64(len(agents))
	return sum.Mul(1 / n), speed / n
}

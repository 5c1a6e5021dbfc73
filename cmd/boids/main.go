package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/cli"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/game"
	"github.com/spf13/cobra"
	"github.com/tochemey/goakt/v3/actor"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags cli.Flags
	cmd := &cobra.Command{
		Use:           "boids",
		Short:         "Watch a flock of gold boids self-organize",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &flags)
		},
	}
	flags.Register(cmd)
	return cmd
}

func run(cmd *cobra.Command, flags *cli.Flags) error {
	cfg, err := flags.Config(cmd)
	if err != nil {
		return err
	}
	logger, err := cli.NewLogger(flags.LogLevel)
	if err != nil {
		return err
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return fmt.Errorf("failed to start actor system: %w", err)
	}
	defer func() {
		if err := system.Stop(ctx); err != nil {
			logger.Warnf("actor system stop: %v", err)
		}
	}()

	g, err := game.NewGame(ctx, cfg, system)
	if err != nil {
		return err
	}

	w, h := game.LogicalSize(cfg)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Boids")
	logger.Infof("flocking %d agents on a %.0fx%.0f viewport", cfg.AgentCount, cfg.ViewportWidth, cfg.ViewportHeight)
	return ebiten.RunGame(g)
}

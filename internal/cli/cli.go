// Package cli holds the flags and setup shared by the boids and headless commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/spf13/cobra"
	golog "github.com/tochemey/goakt/v3/log"
)

// Flags are the command line options common to every command.
// Flags explicitly set on the command line win over the config file.
type Flags struct {
	ConfigFile string
	Agents     int
	Seed       int64
	Boundary   string
	TicksPerS  float64
	LogLevel   string
}

// Register adds the flags to cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.ConfigFile, "config", "c", "", "JSON config file (defaults are used when empty)")
	fs.IntVarP(&f.Agents, "agents", "n", 0, "number of agents spawned on each reset")
	fs.Int64Var(&f.Seed, "seed", 0, "random seed, 0 seeds from the clock on every reset")
	fs.StringVar(&f.Boundary, "boundary", string(behavior.BoundaryNudge), "edge response: nudge or set")
	fs.Float64Var(&f.TicksPerS, "tps", 0, "simulation ticks per second")
	fs.StringVar(&f.LogLevel, "log-level", "info", "debug, info, warn or error")
}

// Config loads the config file, if any, and applies the flags the user set.
func (f *Flags) Config(cmd *cobra.Command) (simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if f.ConfigFile != "" {
		loaded, err := simulation.LoadConfig(f.ConfigFile)
		if err != nil {
			return simulation.Config{}, fmt.Errorf("config %s: %w", f.ConfigFile, err)
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("agents") {
		if f.Agents < 0 || f.Agents > simulation.MaxAgentCount {
			return simulation.Config{}, fmt.Errorf("--agents must be between 0 and %d", simulation.MaxAgentCount)
		}
		cfg.AgentCount = f.Agents
	}
	if fs.Changed("seed") {
		cfg.Seed = f.Seed
	}
	if fs.Changed("boundary") {
		mode := behavior.BoundaryMode(strings.ToLower(f.Boundary))
		if mode != behavior.BoundaryNudge && mode != behavior.BoundarySet {
			return simulation.Config{}, fmt.Errorf("--boundary must be nudge or set, got %q", f.Boundary)
		}
		cfg.BoundaryMode = mode
	}
	if fs.Changed("tps") {
		if f.TicksPerS <= 0 {
			return simulation.Config{}, fmt.Errorf("--tps must be positive")
		}
		cfg.TickIntervalMs = 1000 / f.TicksPerS
	}
	return *cfg, nil
}

// NewLogger builds the goakt logger, writing to stdout, for a level name.
func NewLogger(level string) (golog.Logger, error) {
	var lvl golog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = golog.DebugLevel
	case "info", "":
		lvl = golog.InfoLevel
	case "warn", "warning":
		lvl = golog.WarningLevel
	case "error":
		lvl = golog.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return golog.New(lvl, os.Stdout), nil
}

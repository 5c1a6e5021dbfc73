package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema string

const schemaURL = "config.schema.json"

// Bounds used by Sanitize.
const (
	MinTickInterval = time.Millisecond
	MaxTickInterval = time.Hour
	MinViewportSide = 1.0
	MaxAgentCount   = 10000
)

// Config holds every tunable of a flock run.
// Flocking fields may change between ticks; population fields are read on reset.
type Config struct {
	// Steering rules
	CohesionFactor    float64 `json:"cohesionFactor"`
	TooCloseMagnitude float64 `json:"tooCloseMagnitude"`
	AlignmentFactor   float64 `json:"alignmentFactor"`

	// Motion
	MaxSpeed     float64               `json:"maxSpeed"`
	ReboundSpeed float64               `json:"reboundSpeed"`
	BoundaryMode behavior.BoundaryMode `json:"boundaryMode"`

	// Viewport, supplied once at setup
	Footprint      float64 `json:"footprint"`
	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`

	// Pacing
	TickIntervalMs float64 `json:"tickIntervalMs"`

	// Population (applied on Start/Reset)
	AgentCount   int     `json:"agentCount"`
	InitialSpeed float64 `json:"initialSpeed"`
	Seed         int64   `json:"seed"`
}

// DefaultConfig returns the settings used when no file is given:
// 100 gold squares on a 1000x500 viewport ticking at 24 per second.
func DefaultConfig() *Config {
	return &Config{
		CohesionFactor:    0.001,
		TooCloseMagnitude: 8,
		AlignmentFactor:   0.0125,
		MaxSpeed:          4,
		ReboundSpeed:      1,
		BoundaryMode:      behavior.BoundaryNudge,
		Footprint:         3,
		ViewportWidth:     1000,
		ViewportHeight:    500,
		TickIntervalMs:    1000.0 / 24,
		AgentCount:        100,
		InitialSpeed:      1,
	}
}

// LoadConfig loads configuration from a JSON file and validates it against the
// embedded schema. Missing keys keep their DefaultConfig value.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(b)
}

// ParseConfig validates raw JSON against the schema and decodes it over the defaults.
func ParseConfig(b []byte) (*Config, error) {
	sch, err := jsonschema.CompileString(schemaURL, configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// TickInterval converts TickIntervalMs to a Duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs * float64(time.Millisecond))
}

// Settings extracts the per-tick snapshot read by the rules and the integrator.
func (c Config) Settings() behavior.Settings {
	return behavior.Settings{
		CohesionFactor:    c.CohesionFactor,
		TooCloseMagnitude: c.TooCloseMagnitude,
		AlignmentFactor:   c.AlignmentFactor,
		MaxSpeed:          c.MaxSpeed,
		ReboundSpeed:      c.ReboundSpeed,
		Footprint:         c.Footprint,
		ViewportWidth:     c.ViewportWidth,
		ViewportHeight:    c.ViewportHeight,
		Boundary:          c.BoundaryMode,
	}
}

// Sanitize clamps out of range values to the nearest safe bound instead of failing:
// the loop has no error channel and must keep ticking.
// It returns the clamped copy and the JSON names of the fields it changed.
func (c Config) Sanitize() (Config, []string) {
	def := DefaultConfig()
	var fixed []string

	nonNeg := func(name string, v *float64, fallback float64) {
		switch {
		case math.IsNaN(*v) || math.IsInf(*v, 0):
			*v = fallback
			fixed = append(fixed, name)
		case *v < 0:
			*v = 0
			fixed = append(fixed, name)
		}
	}
	atLeast := func(name string, v *float64, min, fallback float64) {
		switch {
		case math.IsNaN(*v) || math.IsInf(*v, 0):
			*v = fallback
			fixed = append(fixed, name)
		case *v < min:
			*v = min
			fixed = append(fixed, name)
		}
	}

	nonNeg("cohesionFactor", &c.CohesionFactor, def.CohesionFactor)
	nonNeg("tooCloseMagnitude", &c.TooCloseMagnitude, def.TooCloseMagnitude)
	nonNeg("alignmentFactor", &c.AlignmentFactor, def.AlignmentFactor)
	nonNeg("maxSpeed", &c.MaxSpeed, def.MaxSpeed)
	nonNeg("reboundSpeed", &c.ReboundSpeed, def.ReboundSpeed)
	nonNeg("footprint", &c.Footprint, def.Footprint)
	nonNeg("initialSpeed", &c.InitialSpeed, def.InitialSpeed)
	atLeast("viewportWidth", &c.ViewportWidth, MinViewportSide, def.ViewportWidth)
	atLeast("viewportHeight", &c.ViewportHeight, MinViewportSide, def.ViewportHeight)
	atLeast("tickIntervalMs", &c.TickIntervalMs, float64(MinTickInterval)/float64(time.Millisecond), def.TickIntervalMs)
	// past time.Duration range the interval turns negative and every wake-up ticks
	if limit := float64(MaxTickInterval) / float64(time.Millisecond); c.TickIntervalMs > limit {
		c.TickIntervalMs = limit
		fixed = append(fixed, "tickIntervalMs")
	}

	switch {
	case c.AgentCount < 0:
		c.AgentCount = 0
		fixed = append(fixed, "agentCount")
	case c.AgentCount > MaxAgentCount:
		c.AgentCount = MaxAgentCount
		fixed = append(fixed, "agentCount")
	}

	if c.BoundaryMode != behavior.BoundaryNudge && c.BoundaryMode != behavior.BoundarySet {
		if c.BoundaryMode != "" {
			fixed = append(fixed, "boundaryMode")
		}
		c.BoundaryMode = behavior.BoundaryNudge
	}
	return c, fixed
}

// ErrUnknownParameter is returned by ApplyOverrides for a key it cannot map.
var ErrUnknownParameter = errors.New("unknown parameter")

// ApplyOverrides returns a copy of c with the numeric overrides applied, as sent by
// the UI sliders. Keys are the JSON field names, plus "ticksPerSecond".
// Known keys are applied even when an unknown key is present.
func (c Config) ApplyOverrides(overrides map[string]float64) (Config, error) {
	var unknown []string
	for key, v := range overrides {
		switch key {
		case "cohesionFactor":
			c.CohesionFactor = v
		case "tooCloseMagnitude":
			c.TooCloseMagnitude = v
		case "alignmentFactor":
			c.AlignmentFactor = v
		case "maxSpeed":
			c.MaxSpeed = v
		case "reboundSpeed":
			c.ReboundSpeed = v
		case "footprint":
			c.Footprint = v
		case "tickIntervalMs":
			c.TickIntervalMs = v
		case "ticksPerSecond":
			if v > 0 {
				c.TickIntervalMs = 1000 / v
			} else {
				c.TickIntervalMs = 0 // clamped by Sanitize
			}
		case "initialSpeed":
			c.InitialSpeed = v
		case "agentCount":
			c.AgentCount = int(math.Round(v))
		case "boundarySet":
			if v != 0 {
				c.BoundaryMode = behavior.BoundarySet
			} else {
				c.BoundaryMode = behavior.BoundaryNudge
			}
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return c, fmt.Errorf("%w: %s", ErrUnknownParameter, strings.Join(unknown, ", "))
	}
	return c, nil
}

// Overrides is the inverse of ApplyOverrides for the keys the UI controls: the
// current values keyed by parameter name, with boundarySet as 0 or 1.
func (c Config) Overrides() map[string]float64 {
	out := map[string]float64{
		"cohesionFactor":    c.CohesionFactor,
		"tooCloseMagnitude": c.TooCloseMagnitude,
		"alignmentFactor":   c.AlignmentFactor,
		"maxSpeed":          c.MaxSpeed,
		"reboundSpeed":      c.ReboundSpeed,
		"ticksPerSecond":    0,
		"agentCount":        float64(c.AgentCount),
		"boundarySet":       0,
	}
	if c.TickIntervalMs > 0 {
		out["ticksPerSecond"] = 1000 / c.TickIntervalMs
	}
	if c.BoundaryMode == behavior.BoundarySet {
		out["boundarySet"] = 1
	}
	return out
}

// ChangedOverrides returns the entries of current that are missing from sent or
// hold a different value.
func ChangedOverrides(sent, current map[string]float64) map[string]float64 {
	changed := make(map[string]float64)
	for key, v := range current {
		if last, ok := sent[key]; !ok || last != v {
			changed[key] = v
		}
	}
	return changed
}

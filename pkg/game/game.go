// Package game hosts a FlockActor inside an ebiten window: every frame sends a tick
// to the actor, collects the latest snapshot and draws it next to a control panel.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/render"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

// PanelWidth is the logical width of the control column right of the viewport.
const PanelWidth = 260

type Game struct {
	ctx        context.Context
	flockPID   *actor.PID
	snapshotCh chan simulation.Snapshot
	lastState  simulation.Snapshot
	renderer   *render.Renderer
	logger     golog.Logger
	cfg        simulation.Config
	scale      float64

	// UI Controls
	panel        *ui.UIPanel
	sliders      map[string]*ui.Slider
	boundarySet  *ui.Checkbox
	resetPending bool
	sent         map[string]float64 // last values told to the actor

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64
}

// NewGame spawns the flock actor on system and builds the control panel.
func NewGame(ctx context.Context, cfg simulation.Config, system actor.ActorSystem) (*Game, error) {
	cfg, _ = cfg.Sanitize()

	// Buffer to avoid blocking the actor, stale frames are dropped by ChannelSink
	snapshotCh := make(chan simulation.Snapshot, 10)
	flockActor := simulation.NewFlockActor(cfg, snapshotCh, simulation.SystemClock{})
	flockPID, err := system.Spawn(ctx, "flock", flockActor)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn flock actor: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		flockPID:   flockPID,
		snapshotCh: snapshotCh,
		renderer:   render.NewRenderer(1),
		logger:     system.Logger(),
		cfg:        cfg,
		scale:      1,
		sliders:    make(map[string]*ui.Slider),
	}
	g.lastState.Settings = cfg.Settings()
	g.renderer.Render(nil, cfg.Settings())
	g.buildPanel()
	// sliders clamp to their range, so a config value outside it differs from
	// the widget and goes out with the first Update
	g.sent = cfg.Overrides()
	return g, nil
}

func (g *Game) buildPanel() {
	cfg := g.cfg
	panel := ui.NewUIPanel(cfg.ViewportWidth+10, 10, PanelWidth-20, cfg.ViewportHeight-20)
	panel.Title = "Flock"

	panel.AddSection("Steering")
	g.sliders["cohesionFactor"] = panel.AddSlider("Cohesion", 0, 0.01, cfg.CohesionFactor)
	g.sliders["tooCloseMagnitude"] = panel.AddSlider("Separation distance", 0, 50, cfg.TooCloseMagnitude)
	g.sliders["alignmentFactor"] = panel.AddSlider("Alignment", 0, 0.1, cfg.AlignmentFactor)
	panel.EndSection()

	panel.AddSection("Motion")
	g.sliders["maxSpeed"] = panel.AddSlider("Max speed", 0.5, 10, cfg.MaxSpeed)
	g.sliders["reboundSpeed"] = panel.AddSlider("Rebound speed", 0, 4, cfg.ReboundSpeed)
	g.sliders["ticksPerSecond"] = panel.AddSlider("Ticks per second", 1, 120, 1000/cfg.TickIntervalMs)
	g.boundarySet = panel.AddCheckbox("Edge rebound", cfg.BoundaryMode == behavior.BoundarySet)
	g.boundarySet.Caption = "set (off: nudge)"
	panel.EndSection()

	panel.AddSection("Population (on reset)")
	agents := panel.AddSlider("Agents", 1, 1000, float64(cfg.AgentCount))
	agents.Format = "%.0f"
	g.sliders["agentCount"] = agents
	panel.AddButton("Reset [R]", func() { g.resetPending = true })
	panel.EndSection()

	g.sliders["ticksPerSecond"].Format = "%.0f"
	g.panel = panel
}

// controls reads the widgets as override values keyed by config name.
func (g *Game) controls() map[string]float64 {
	out := make(map[string]float64, len(g.sliders)+1)
	for key, s := range g.sliders {
		out[key] = s.Value
	}
	out["boundarySet"] = 0
	if g.boundarySet.Value {
		out["boundarySet"] = 1
	}
	return out
}

// changedControls returns the widget values that differ from what the actor last received.
func (g *Game) changedControls() map[string]float64 {
	return simulation.ChangedOverrides(g.sent, g.controls())
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		ms := float64(time.Since(start).Microseconds()) / 1000.0
		g.updateAvg = g.updateAvg*0.95 + ms*0.05
	}()

	g.panel.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.resetPending = true
	}

	// Parameters first so the reset below uses the new population values
	if changed := g.changedControls(); len(changed) > 0 {
		msg, err := simulation.NewParameters(changed)
		if err != nil {
			return err
		}
		if err := actor.Tell(g.ctx, g.flockPID, msg); err != nil {
			return fmt.Errorf("failed to send parameters: %w", err)
		}
		for k, v := range changed {
			g.sent[k] = v
		}
	}

	if g.resetPending {
		g.resetPending = false
		if err := actor.Tell(g.ctx, g.flockPID, simulation.NewReset()); err != nil {
			return fmt.Errorf("failed to send reset: %w", err)
		}
	}

	// The actor decides whether enough time has elapsed for a tick
	if err := actor.Tell(g.ctx, g.flockPID, simulation.NewTick(time.Now())); err != nil {
		return fmt.Errorf("failed to send tick: %w", err)
	}

	// Keep only the most recent snapshot
	for drained := false; !drained; {
		select {
		case snap := <-g.snapshotCh:
			g.lastState = snap
		default:
			drained = true
		}
	}
	g.renderer.Render(g.lastState.Agents, g.lastState.Settings)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		ms := float64(time.Since(start).Microseconds()) / 1000.0
		g.drawAvg = g.drawAvg*0.95 + ms*0.05
	}()

	g.renderer.Draw(screen)
	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.1f TPS: %.1f\nRun %d  tick %d  agents %d\nUpdate: %.2fms Draw: %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Run,
		g.lastState.Tick,
		len(g.lastState.Agents),
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
}

// Layout sizes the screen in device pixels so squares stay sharp on high density displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	if scale != g.scale {
		g.scale = scale
		g.renderer.Scale = scale
		g.panel.Scale = scale
		g.logger.Debugf("device scale factor is now %.2f", scale)
	}
	w, h := LogicalSize(g.cfg)
	return int(float64(w) * scale), int(float64(h) * scale)
}

// LogicalSize is the window size for cfg: the viewport plus the control column.
func LogicalSize(cfg simulation.Config) (int, int) {
	return int(cfg.ViewportWidth) + PanelWidth, int(cfg.ViewportHeight)
}

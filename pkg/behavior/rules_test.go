package behavior

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

func vec(x, y float64) geometry.Vector2D { return geometry.NewVector(x, y) }

func TestCohesion(t *testing.T) {
	s := Settings{CohesionFactor: 0.5}
	me := Agent{ID: 1, Position: vec(0, 0)}
	flock := []Agent{
		me,
		{ID: 2, Position: vec(10, 0)},
		{ID: 3, Position: vec(10, 10)},
	}

	// center of the others is (10, 5), half of the offset
	got := Cohesion(me, flock, s)
	if want := vec(5, 2.5); !got.Eq(want) {
		t.Errorf("Cohesion = %v; want %v", got, want)
	}
}

func TestCohesion_ExcludesSelfByID(t *testing.T) {
	s := Settings{CohesionFactor: 1}
	// self appears with a stale position: it must still be skipped
	me := Agent{ID: 7, Position: vec(0, 0)}
	flock := []Agent{{ID: 7, Position: vec(100, 100)}, {ID: 8, Position: vec(4, 0)}}

	if got := Cohesion(me, flock, s); !got.Eq(vec(4, 0)) {
		t.Errorf("Cohesion = %v; want (4, 0)", got)
	}
}

func TestSeparation_ThresholdBoundary(t *testing.T) {
	const threshold = 10.0
	const eps = 1e-6
	s := Settings{TooCloseMagnitude: threshold}
	me := Agent{ID: 1, Position: vec(0, 0)}

	t.Run("just outside", func(t *testing.T) {
		flock := []Agent{me, {ID: 2, Position: vec(threshold+eps, 0)}}
		if got := Separation(me, flock, s); got != geometry.Zero {
			t.Errorf("Separation = %v; want zero", got)
		}
	})

	t.Run("just inside", func(t *testing.T) {
		other := Agent{ID: 2, Position: vec(threshold-eps, 0)}
		flock := []Agent{me, other}

		got := Separation(me, flock, s)
		if got.X >= 0 || got.Y != 0 {
			t.Errorf("Separation on self = %v; want pointing to -X", got)
		}
		back := Separation(other, flock, s)
		if back.X <= 0 || back.Y != 0 {
			t.Errorf("Separation on other = %v; want pointing to +X", back)
		}
	})
}

func TestSeparation_SumsCloseNeighbors(t *testing.T) {
	s := Settings{TooCloseMagnitude: 5}
	me := Agent{ID: 1, Position: vec(0, 0)}
	flock := []Agent{
		me,
		{ID: 2, Position: vec(1, 0)},
		{ID: 3, Position: vec(2, 0)},
		{ID: 4, Position: vec(50, 0)}, // too far, ignored
	}
	if got := Separation(me, flock, s); !got.Eq(vec(-3, 0)) {
		t.Errorf("Separation = %v; want (-3, 0)", got)
	}
}

func TestAlignment_DividesByFlockSize(t *testing.T) {
	s := Settings{AlignmentFactor: 1}
	me := Agent{ID: 1, Velocity: vec(100, 100)}
	flock := []Agent{
		me,
		{ID: 2, Velocity: vec(3, 0)},
		{ID: 3, Velocity: vec(0, 3)},
	}
	// (3,3) summed over the others, divided by 3 agents, not 2
	if got := Alignment(me, flock, s); !got.Eq(vec(1, 1)) {
		t.Errorf("Alignment = %v; want (1, 1)", got)
	}
}

func TestRules_SingleAgent(t *testing.T) {
	s := Settings{CohesionFactor: 1, AlignmentFactor: 1, TooCloseMagnitude: 10}
	me := Agent{ID: 1, Position: vec(3, 4), Velocity: vec(1, 1)}
	flock := []Agent{me}

	for name, rule := range map[string]func(Agent, []Agent, Settings) geometry.Vector2D{
		"Cohesion":   Cohesion,
		"Separation": Separation,
		"Alignment":  Alignment,
		"Steering":   Steering,
	} {
		if got := rule(me, flock, s); got != geometry.Zero {
			t.Errorf("%s on a lone agent = %v; want zero", name, got)
		}
	}
}

func TestSteering_NonFiniteCollapses(t *testing.T) {
	s := Settings{CohesionFactor: math.NaN()}
	me := Agent{ID: 1}
	flock := []Agent{me, {ID: 2, Position: vec(10, 0)}}

	if got := Steering(me, flock, s); got != geometry.Zero {
		t.Errorf("Steering with NaN factor = %v; want zero", got)
	}
}

func TestRules_Pure(t *testing.T) {
	s := Settings{CohesionFactor: 0.1, AlignmentFactor: 0.1, TooCloseMagnitude: 50}
	flock := []Agent{
		{ID: 1, Position: vec(0, 0), Velocity: vec(1, 0)},
		{ID: 2, Position: vec(5, 5), Velocity: vec(0, 1)},
	}
	before := append([]Agent(nil), flock...)

	first := Steering(flock[0], flock, s)
	second := Steering(flock[0], flock, s)

	if first != second {
		t.Errorf("Steering not deterministic: %v then %v", first, second)
	}
	for i := range flock {
		if flock[i] != before[i] {
			t.Errorf("agent %d changed from %+v to %+v", i, before[i], flock[i])
		}
	}
}

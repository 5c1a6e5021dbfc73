package geometry

import (
	"math"
	"testing"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestVector_String(t *testing.T) {
	v := Vector2D{1.234, 5.678}
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	t.Run("Add", func(t *testing.T) {
		want := Vector2D{4, 6}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector2D{-2, -2}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector2D{2, 4}
		if got := v1.Mul(2); !got.Eq(want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})

	t.Run("Operands untouched", func(t *testing.T) {
		_ = v1.Add(v2).Mul(3).Sub(v1)
		if v1 != (Vector2D{1, 2}) || v2 != (Vector2D{3, 4}) {
			t.Errorf("operands changed: v1=%v v2=%v", v1, v2)
		}
	})
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector2D{3, 4}

	if got := v.Len(); got != 5 {
		t.Errorf("Len = %v; want 5", got)
	}
	if got := v.LenSqr(); got != 25 {
		t.Errorf("LenSqr = %v; want 25", got)
	}
	if got := (Vector2D{1, 1}).DistanceTo(Vector2D{4, 5}); got != 5 {
		t.Errorf("DistanceTo = %v; want 5", got)
	}

	n := v.Normalize()
	if !n.Eq(Vector2D{0.6, 0.8}) || !floatEquals(n.Len(), 1) {
		t.Errorf("Normalize = %v; want (0.6, 0.8)", n)
	}
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("Normalize(0,0) = %v; want (0,0)", got)
	}
}

func TestVector_Limit(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2D
		max  float64
		want Vector2D
	}{
		{"shorter is unchanged", Vector2D{1, 0}, 2, Vector2D{1, 0}},
		{"exactly max is unchanged", Vector2D{3, 4}, 5, Vector2D{3, 4}},
		{"longer is rescaled", Vector2D{6, 8}, 5, Vector2D{3, 4}},
		{"zero max", Vector2D{6, 8}, 0, Zero},
		{"negative max", Vector2D{6, 8}, -1, Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Limit(tt.max); !got.Eq(tt.want) {
				t.Errorf("%v.Limit(%v) = %v; want %v", tt.v, tt.max, got, tt.want)
			}
		})
	}
}

func TestVector_IsFinite(t *testing.T) {
	tests := []struct {
		v    Vector2D
		want bool
	}{
		{Vector2D{1, -2}, true},
		{Vector2D{math.NaN(), 0}, false},
		{Vector2D{0, math.Inf(1)}, false},
		{Vector2D{math.Inf(-1), math.NaN()}, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFinite(); got != tt.want {
			t.Errorf("%v.IsFinite() = %v; want %v", tt.v, got, tt.want)
		}
	}
}

func TestVector_Eq(t *testing.T) {
	v := Vector2D{1, 2}
	if !v.Eq(Vector2D{1, 2}) {
		t.Error("Eq exact match failed")
	}
	if !v.Eq(Vector2D{1 + Epsilon/2, 2 - Epsilon/2}) {
		t.Error("Eq epsilon match failed")
	}
	if v.Eq(Vector2D{1.1, 2}) {
		t.Error("Eq mismatch failed")
	}
}

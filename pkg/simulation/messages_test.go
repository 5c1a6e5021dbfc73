package simulation

import (
	"sort"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestNewTick(t *testing.T) {
	if got := NewTick(t0).AsTime(); !got.Equal(t0) {
		t.Errorf("NewTick round trip = %v; want %v", got, t0)
	}
}

func TestOverridesFromProto(t *testing.T) {
	msg, err := structpb.NewStruct(map[string]interface{}{
		"maxSpeed":    3.5,
		"boundarySet": true,
		"label":       "fast",
	})
	if err != nil {
		t.Fatal(err)
	}

	got, invalid := overridesFromProto(msg)
	if got["maxSpeed"] != 3.5 || got["boundarySet"] != 1 {
		t.Errorf("overrides = %v", got)
	}
	sort.Strings(invalid)
	if len(invalid) != 1 || invalid[0] != "label" {
		t.Errorf("invalid = %v; want [label]", invalid)
	}
}

func TestNewParameters(t *testing.T) {
	msg, err := NewParameters(map[string]float64{"cohesionFactor": 0.002})
	if err != nil {
		t.Fatal(err)
	}
	got, invalid := overridesFromProto(msg)
	if len(invalid) != 0 || got["cohesionFactor"] != 0.002 {
		t.Errorf("got %v, invalid %v", got, invalid)
	}
}

func TestParseStats(t *testing.T) {
	want := Stats{State: "running", Run: 3, Ticks: 1200, Agents: 100}
	got, err := ParseStats(want.toProto())
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("ParseStats = %+v; want %+v", got, want)
	}

	if _, err := ParseStats(wrapperspb.String("stats")); err == nil {
		t.Error("expected an error for a non struct response")
	}
}

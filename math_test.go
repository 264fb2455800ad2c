package tov

import (
	"testing"

	"github.com/gonum/floats"
)

func TestLogspace(t *testing.T) {
	vals := logspace(1e-4, 1.0, 50)
	if len(vals) != 50 {
		t.Fatalf("expected 50 values, got %d", len(vals))
	}
	if vals[0] != 1e-4 || vals[49] != 1.0 {
		t.Fatalf("endpoints not pinned: %v, %v", vals[0], vals[49])
	}
	// Log-uniform spacing means a constant ratio between neighbors.
	ratio := vals[1] / vals[0]
	for i := 2; i < len(vals); i++ {
		if !floats.EqualWithinAbsOrRel(vals[i]/vals[i-1], ratio, 1e-9, 1e-9) {
			t.Fatalf("spacing not log-uniform at index %d", i)
		}
	}
}

func TestLogspaceDegenerate(t *testing.T) {
	if got := logspace(0.5, 2, 1); len(got) != 1 || got[0] != 0.5 {
		t.Fatalf("n=1 must return the lower bound, got %v", got)
	}
	if got := logspace(0.5, 2, 0); got != nil {
		t.Fatalf("n=0 must return nil, got %v", got)
	}
}

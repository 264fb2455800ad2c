package tov

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestDeformabilityScaling(t *testing.T) {
	// Lambda must scale as C^-5 at fixed k2.
	const k2 = 0.1
	for _, c := range []float64{0.05, 0.1, 0.2} {
		ratio := Deformability(k2, c) / Deformability(k2, 2*c)
		if !floats.EqualWithinAbsOrRel(ratio, 32, 1e-12, 1e-12) {
			t.Fatalf("Lambda(C)/Lambda(2C) = %v at C=%v, expected 2^5", ratio, c)
		}
	}
	if Deformability(k2, 0) != 0 {
		t.Fatal("zero compactness must not divide by zero")
	}
}

func TestLoveK2Degenerate(t *testing.T) {
	if got := LoveK2(2, 0); got != 0 {
		t.Fatalf("k2 at C=0 is %v, expected 0", got)
	}
	if got := LoveK2(2, 0.5); got != 0 {
		t.Fatalf("k2 at the black-hole bound is %v, expected 0", got)
	}
}

func TestLoveK2NewtonianLimit(t *testing.T) {
	// For C -> 0 the closed form reduces to the Newtonian
	// k2 = (2-y) / (2(y+3)). The denominator cancels through four orders
	// in C, so probe at a compactness small enough for the limit but
	// large enough that float64 still resolves the C^5 remainder.
	for _, y := range []float64{0.5, 1.0, 1.5} {
		want := (2 - y) / (2 * (y + 3))
		got := LoveK2(y, 1e-3)
		if !floats.EqualWithinAbsOrRel(got, want, 1e-3, 1e-2) {
			t.Fatalf("k2(y=%v, C->0) = %v, Newtonian limit %v", y, got, want)
		}
	}
}

func TestTidalInvalidStar(t *testing.T) {
	eos := linearEOS(t)
	res := NewTidal(eos, 0, quietConfig()).Solve()
	if res.Valid {
		t.Fatal("zero central pressure must be invalid")
	}
	if res.K2 != 0 || res.Lambda != 0 {
		t.Fatalf("invalid result must carry k2=Lambda=0, got %v %v", res.K2, res.Lambda)
	}
}

func TestTidalMatchesBackground(t *testing.T) {
	eos := linearEOS(t)
	cfg := quietConfig()
	cfg.RMax = 25
	cfg.Dr = 1e-4
	star := NewBackground(eos, 0.5, cfg).Solve()
	res := NewTidal(eos, 0.5, cfg).Solve()
	// Same equations, same steps: the background block of the tidal system
	// must reproduce the standalone background solution.
	if !floats.EqualWithinAbs(res.R, star.R, 1e-12) {
		t.Fatalf("tidal R=%v, background R=%v", res.R, star.R)
	}
	if !floats.EqualWithinAbs(res.M, star.M, 1e-12) {
		t.Fatalf("tidal M=%v, background M=%v", res.M, star.M)
	}
}

func TestTidalLinearEOS(t *testing.T) {
	eos := linearEOS(t)
	cfg := quietConfig()
	cfg.RMax = 25
	cfg.Dr = 1e-4
	res := NewTidal(eos, 0.5, cfg).Solve()
	if !res.Valid {
		t.Fatal("expected a valid tidal solution")
	}
	c := res.Compactness()
	if c <= 0 || 2*c >= 1 {
		t.Fatalf("unphysical compactness %v", c)
	}
	// The e=2p star at pc=0.5 has C=0.326, k2=0.0101 and Lambda=1.83.
	if !floats.EqualWithinAbsOrRel(res.K2, 0.0101, 1e-3, 5e-2) {
		t.Fatalf("k2 = %v, expected about 0.0101", res.K2)
	}
	if !floats.EqualWithinAbsOrRel(res.Lambda, 1.83, 0.15, 5e-2) {
		t.Fatalf("Lambda = %v, expected about 1.83", res.Lambda)
	}
	if !floats.EqualWithinAbsOrRel(res.Lambda, (2.0/3.0)*res.K2/math.Pow(c, 5), 1e-12, 1e-12) {
		t.Fatal("Lambda inconsistent with its own closed form")
	}
}

// TestTidalStepRefinement halves the step size and expects the Love number
// to move by far less than its magnitude, i.e. the perturbation
// integration converges.
func TestTidalStepRefinement(t *testing.T) {
	eos := linearEOS(t)
	cfg := quietConfig()
	cfg.RMax = 25
	cfg.Dr = 2e-4
	coarse := NewTidal(eos, 0.5, cfg).Solve()
	cfg.Dr = 1e-4
	fine := NewTidal(eos, 0.5, cfg).Solve()
	if !coarse.Valid || !fine.Valid {
		t.Fatal("both refinements must converge")
	}
	if !floats.EqualWithinAbsOrRel(coarse.K2, fine.K2, 1e-4, 5e-2) {
		t.Fatalf("k2 not converging with the step: %v vs %v", coarse.K2, fine.K2)
	}
}

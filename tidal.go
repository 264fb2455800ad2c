package tov

import (
	"math"

	"github.com/gonum/floats"

	"github.com/PsiPhiDelta/TOVExtravaganza/integrator"
)

// Tidal integrates the background TOV equations together with the static
// even-parity l=2 metric perturbation, as an integrator.Integrable over
// the state vector [M, p, y]. y is the logarithmic derivative of the
// perturbation function, regular at the center with y(0) = 2.
type Tidal struct {
	eos      *EOS
	pc       float64
	rMax     float64
	dr       float64
	guard    float64
	r        float64
	state    []float64 // [M(r), p(r), y(r)]
	lastR    float64
	lastM    float64
	lastY    float64
	surfaced bool
}

// NewTidal returns a tidal integrator for the given central pressure.
func NewTidal(eos *EOS, pc float64, cfg Config) *Tidal {
	cfg = cfg.finalized()
	return &Tidal{
		eos:   eos.Clone(),
		pc:    pc,
		rMax:  cfg.RMax,
		dr:    cfg.Dr,
		guard: cfg.EpsGuard,
		state: []float64{0, pc, 2},
	}
}

// GetState implements the integrator.Integrable interface.
func (td *Tidal) GetState() []float64 {
	s := make([]float64, len(td.state))
	copy(s, td.state)
	return s
}

// SetState implements the integrator.Integrable interface.
func (td *Tidal) SetState(r float64, s []float64) {
	td.r = r
	td.state = s
	if s[1] > 0 {
		td.lastR = r
		td.lastM = s[0]
		td.lastY = s[2]
	}
}

// Stop implements the integrator.Integrable interface.
func (td *Tidal) Stop(r float64) bool {
	if td.state[1] <= 0 {
		td.surfaced = true
		return true
	}
	return td.r >= td.rMax
}

// Func implements the integrator.Integrable interface. The mass and
// pressure derivatives are identical to the background system, so the
// tidal sequence reproduces the background (R, M) bit for bit. The
// perturbation obeys
//
//	r y' + y² + y F(r) + r² Q(r) = 0
//
// with the standard l=2 coefficients
//
//	F = (r - 4πr³(ε-p)) / (r-2M)
//	Q = 4πr(5ε + 9p + (ε+p) dε/dp - 6/(4πr²)) / (r-2M)
//	    - 4 [(M + 4πr³p) / (r²(1-2M/r))]²
//
// where dε/dp comes from the bracketing EOS interval. At the center the
// perturbation derivative vanishes by regularity.
func (td *Tidal) Func(r float64, s []float64) []float64 {
	M, p, y := s[0], s[1], s[2]
	if p <= 0 {
		return []float64{0, 0, 0}
	}
	eVal := td.eos.EnergyDensity(p)
	dMdr := fourPi * r * r * eVal

	denom := r * (r - 2*M)
	if math.Abs(denom) < td.guard {
		// Innermost steps: dp/dr -> 0 and y' -> 0 at the regular center.
		return []float64{dMdr, 0, 0}
	}
	dPdr := -((eVal + p) * (M + fourPi*r*r*r*p)) / denom

	dedp := td.eos.EnergyDensitySlope(p)
	rMinus2M := r - 2*M
	F := (r - fourPi*r*r*r*(eVal-p)) / rMinus2M
	lambdaTerm := (M + fourPi*r*r*r*p) / (r * rMinus2M)
	Q := fourPi*r*(5*eVal+9*p+(eVal+p)*dedp-6/(fourPi*r*r))/rMinus2M -
		4*lambdaTerm*lambdaTerm
	dYdr := -(y*y + y*F + r*r*Q) / r

	return []float64{dMdr, dPdr, dYdr}
}

// Solve runs the integration and combines the surface values into the
// Love number and tidal deformability. Degenerate surfaces (R <= 0 or
// M <= 0) yield an invalid result with k2 = Lambda = 0.
func (td *Tidal) Solve() TidalResult {
	if td.pc <= 0 {
		return TidalResult{Star: Star{Pc: td.pc, EOS: td.eos}}
	}
	integrator.NewRK4(0, td.dr, td).Solve()
	star := Star{Pc: td.pc, R: td.lastR, M: td.lastM, EOS: td.eos}
	star.Valid = td.surfaced && star.M > 0
	res := TidalResult{Star: star, Y: td.lastY}
	if star.R <= 0 || star.M <= 0 {
		res.Valid = false
		return res
	}
	c := star.Compactness()
	res.K2 = LoveK2(td.lastY, c)
	res.Lambda = Deformability(res.K2, c)
	return res
}

// LoveK2 combines the surface perturbation value y(R) and the compactness
// C = M/R into the quadrupolar Love number, using the closed-form ratio of
// fifth-order polynomials in C (with the log term from the exterior
// solution). Unphysical compactness (C <= 0 or 2C >= 1) returns zero.
func LoveK2(y, c float64) float64 {
	if c <= 0 || 2*c >= 1 {
		return 0
	}
	oneMinus2C := 1 - 2*c
	num := (8.0 / 5.0) * math.Pow(c, 5) * oneMinus2C * oneMinus2C * (2 + 2*c*(y-1) - y)
	den := 2*c*(6-3*y+3*c*(5*y-8)) +
		4*math.Pow(c, 3)*(13-11*y+c*(3*y-2)+2*c*c*(1+y)) +
		3*oneMinus2C*oneMinus2C*(2-y+2*c*(y-1))*math.Log(oneMinus2C)
	if floats.EqualWithinAbs(den, 0, 1e-300) {
		return 0
	}
	return num / den
}

// Deformability returns the dimensionless tidal deformability
// Lambda = (2/3) k2 / C^5.
func Deformability(k2, c float64) float64 {
	if c <= 0 {
		return 0
	}
	return (2.0 / 3.0) * k2 / math.Pow(c, 5)
}

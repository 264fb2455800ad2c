package tov

import (
	"math"

	"github.com/PsiPhiDelta/TOVExtravaganza/integrator"
)

const fourPi = 4 * math.Pi

// ProfilePoint is one accepted radial sample of a background integration.
type ProfilePoint struct {
	R float64 // radius, code units
	M float64 // enclosed mass, code units
	P float64 // pressure, code units
}

/* Handles the hydrostatic-equilibrium integrations. */

// Background integrates the Tolman-Oppenheimer-Volkoff equations outward
// from the center for a single central pressure. It is an
// integrator.Integrable over the state vector [M, p].
type Background struct {
	eos      *EOS
	pc       float64
	rMax     float64
	dr       float64
	guard    float64
	r        float64
	state    []float64 // [M(r), p(r)]
	lastR    float64   // last radius at which p was still positive
	lastM    float64
	surfaced bool                // p dropped to or below zero before rMax
	profChan chan<- ProfilePoint // optional radial profile stream
}

// NewBackground returns a background integrator for the given central
// pressure. The EOS is cloned so concurrent integrations never share a
// bracket cursor.
func NewBackground(eos *EOS, pc float64, cfg Config) *Background {
	cfg = cfg.finalized()
	return &Background{
		eos:   eos.Clone(),
		pc:    pc,
		rMax:  cfg.RMax,
		dr:    cfg.Dr,
		guard: cfg.EpsGuard,
		state: []float64{0, pc},
	}
}

// StreamTo streams every accepted positive-pressure sample (including the
// center) to the given channel during Solve, which closes it when done.
func (b *Background) StreamTo(ch chan<- ProfilePoint) {
	b.profChan = ch
}

// GetState implements the integrator.Integrable interface.
func (b *Background) GetState() []float64 {
	s := make([]float64, len(b.state))
	copy(s, b.state)
	return s
}

// SetState implements the integrator.Integrable interface. The surface
// bookkeeping lives here: every accepted state with positive pressure
// becomes the outermost sample, so (R, M) always matches the last
// streamed point, on the surfaced and the capped path alike.
func (b *Background) SetState(r float64, s []float64) {
	b.r = r
	b.state = s
	if s[1] > 0 {
		b.lastR = r
		b.lastM = s[0]
		if b.profChan != nil {
			b.profChan <- ProfilePoint{R: r, M: s[0], P: s[1]}
		}
	}
}

// Stop implements the integrator.Integrable interface. Integration ends at
// the stellar surface (p <= 0) or at the configured maximum radius
// (non-convergence).
func (b *Background) Stop(r float64) bool {
	if b.state[1] <= 0 {
		b.surfaced = true
		return true
	}
	return b.r >= b.rMax
}

// Func implements the integrator.Integrable interface with the TOV
// right-hand side in code units (G=c=1):
//
//	dM/dr = 4π r² ε(p)
//	dp/dr = -(ε+p)(M + 4π r³ p) / (r(r-2M))
//
// The pressure derivative is defined as zero once p is non-positive and
// when the denominator is within the numerical guard of zero, so the
// central singularity and the surface crossing never divide by zero.
func (b *Background) Func(r float64, s []float64) []float64 {
	M, p := s[0], s[1]
	if p <= 0 {
		return []float64{0, 0}
	}
	eVal := b.eos.EnergyDensity(p)
	dMdr := fourPi * r * r * eVal
	denom := r * (r - 2*M)
	dPdr := 0.0
	if math.Abs(denom) >= b.guard {
		dPdr = -((eVal + p) * (M + fourPi*r*r*r*p)) / denom
	}
	return []float64{dMdr, dPdr}
}

// Solve runs the integration and returns the resulting Star. A vanishing
// or negative central pressure yields no star (R=0, M=0, invalid).
func (b *Background) Solve() Star {
	if b.pc <= 0 {
		if b.profChan != nil {
			close(b.profChan)
		}
		return Star{Pc: b.pc, EOS: b.eos}
	}
	if b.profChan != nil {
		b.profChan <- ProfilePoint{R: 0, M: 0, P: b.pc}
	}
	integrator.NewRK4(0, b.dr, b).Solve()
	if b.profChan != nil {
		close(b.profChan)
	}
	star := Star{Pc: b.pc, R: b.lastR, M: b.lastM, EOS: b.eos}
	star.Valid = b.surfaced && star.M > 0
	return star
}

package tov

// MSunInCode converts code-unit mass to solar masses:
// 1 Msun = 1.4766 (G=c=1) length units.
const MSunInCode = 1.4766

// Solution is any star solution labeled by its central pressure. Both Star
// and TidalResult implement it, so a Sequence can hold either.
type Solution interface {
	CentralPressure() float64
	Radius() float64        // surface radius, code units
	Mass() float64          // enclosed mass at the surface, code units
	MassSolar() float64     // enclosed mass in solar masses
	Love() (k2, lambda float64) // zero for background-only solutions
	IsValid() bool
}

// Star is the background (TOV) solution for one central pressure.
// It is immutable once returned by the integrator.
type Star struct {
	Pc    float64 // central pressure, code units
	R     float64 // surface radius, code units
	M     float64 // enclosed mass, code units
	Valid bool    // surface reached inside the domain with M > 0
	EOS   *EOS    // the table this star was built from
}

// CentralPressure implements the Solution interface.
func (s Star) CentralPressure() float64 { return s.Pc }

// Radius implements the Solution interface.
func (s Star) Radius() float64 { return s.R }

// Mass implements the Solution interface.
func (s Star) Mass() float64 { return s.M }

// MassSolar implements the Solution interface.
func (s Star) MassSolar() float64 { return s.M / MSunInCode }

// Love implements the Solution interface. A background solution carries no
// tidal information.
func (s Star) Love() (float64, float64) { return 0, 0 }

// IsValid implements the Solution interface.
func (s Star) IsValid() bool { return s.Valid }

// Compactness returns C = M/R, or zero for a surfaceless solution.
func (s Star) Compactness() float64 {
	if s.R <= 0 {
		return 0
	}
	return s.M / s.R
}

// InterpolateAtCenter evaluates every non-pressure EOS column at the
// central pressure.
func (s Star) InterpolateAtCenter() map[string]float64 {
	out := make(map[string]float64)
	if s.EOS == nil {
		return out
	}
	eos := s.EOS.Clone()
	for _, col := range eos.ColNames() {
		if col == "p" {
			continue
		}
		out[col] = eos.Value(col, s.Pc)
	}
	return out
}

// TidalResult refines a Star with the l=2 tidal response at the surface.
type TidalResult struct {
	Star
	Y      float64 // logarithmic metric-perturbation derivative y(R)
	K2     float64 // dimensionless quadrupolar Love number
	Lambda float64 // dimensionless tidal deformability
}

// Love implements the Solution interface.
func (t TidalResult) Love() (float64, float64) { return t.K2, t.Lambda }

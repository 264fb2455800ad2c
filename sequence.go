package tov

import (
	"os"
	"sort"
	"sync"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/matrix/mat64"
)

// Config gathers the knobs of a stellar-structure sweep. The zero value is
// usable: every zero field falls back to the defaults of DefaultConfig.
// Passing the configuration explicitly (instead of package globals) keeps
// independent runs and tests isolated.
type Config struct {
	RMax     float64 // maximum integration radius, code units
	Dr       float64 // radial step size, code units
	NumStars int     // number of central pressures to sample
	PFloor   float64 // positive floor for the lowest central pressure
	EpsGuard float64 // denominator guard of the TOV pressure equation
	Workers  int     // parallel integrations; 1 means sequential
	Logger   kitlog.Logger
}

// DefaultConfig returns the reference sweep settings.
func DefaultConfig() Config {
	return Config{
		RMax:     100,
		Dr:       0.001,
		NumStars: 500,
		PFloor:   1e-15,
		EpsGuard: 1e-30,
		Workers:  1,
	}
}

// finalized fills the zero fields with their defaults.
func (cfg Config) finalized() Config {
	def := DefaultConfig()
	if cfg.RMax <= 0 {
		cfg.RMax = def.RMax
	}
	if cfg.Dr <= 0 {
		cfg.Dr = def.Dr
	}
	if cfg.NumStars <= 0 {
		cfg.NumStars = def.NumStars
	}
	if cfg.PFloor <= 0 {
		cfg.PFloor = def.PFloor
	}
	if cfg.EpsGuard <= 0 {
		cfg.EpsGuard = def.EpsGuard
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.Logger == nil {
		cfg.Logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	}
	return cfg
}

// Sequence is an ordered star family, one entry per central pressure that
// converged, sorted by increasing central pressure.
type Sequence struct {
	Entries []Solution
	Skipped int // central pressures that did not yield a valid star
}

// MassPoint carries the properties interpolated at a target mass.
type MassPoint struct {
	MSolar float64
	Pc     float64
	R      float64
	K2     float64
	Lambda float64
}

// centralPressures samples the sweep points log-uniformly across the
// tabulated pressure domain, guarded from below by the pressure floor.
func centralPressures(eos *EOS, cfg Config) []float64 {
	pMin, pMax := eos.PressureRange()
	if pMin < cfg.PFloor {
		pMin = cfg.PFloor
	}
	return logspace(pMin, pMax, cfg.NumStars)
}

// sweep runs solve for every sampled central pressure on a bounded worker
// pool and collects the valid solutions in sample order. One failed star
// never aborts the sweep: it is logged and counted.
func sweep(eos *EOS, cfg Config, solve func(pc float64) Solution) Sequence {
	pcs := centralPressures(eos, cfg)
	results := make([]Solution, len(pcs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Workers)
	for i, pc := range pcs {
		wg.Add(1)
		go func(i int, pc float64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = solve(pc)
		}(i, pc)
	}
	wg.Wait()

	var seq Sequence
	for i, sol := range results {
		if sol == nil || !sol.IsValid() {
			seq.Skipped++
			cfg.Logger.Log("level", "warning", "subsys", "sweep", "status", "skipped", "pc", pcs[i])
			continue
		}
		seq.Entries = append(seq.Entries, sol)
	}
	return seq
}

// ComputeSequence sweeps the star family with the background integrator.
func ComputeSequence(eos *EOS, cfg Config) Sequence {
	cfg = cfg.finalized()
	return sweep(eos, cfg, func(pc float64) Solution {
		return NewBackground(eos, pc, cfg).Solve()
	})
}

// ComputeTidalSequence sweeps the star family with the tidal integrator.
func ComputeTidalSequence(eos *EOS, cfg Config) Sequence {
	cfg = cfg.finalized()
	return sweep(eos, cfg, func(pc float64) Solution {
		return NewTidal(eos, pc, cfg).Solve()
	})
}

// MaxMass returns the entry with the highest mass, the stability boundary
// of the family. The second return is false for an empty sequence.
func (seq Sequence) MaxMass() (Solution, bool) {
	var best Solution
	for _, sol := range seq.Entries {
		if best == nil || sol.MassSolar() > best.MassSolar() {
			best = sol
		}
	}
	return best, best != nil
}

// byMass returns the valid entries sorted by ascending solar mass, with
// exact mass ties deduplicated (first entry wins), ready for property
// interpolation.
func (seq Sequence) byMass() []Solution {
	sols := make([]Solution, len(seq.Entries))
	copy(sols, seq.Entries)
	sort.SliceStable(sols, func(i, j int) bool { return sols[i].MassSolar() < sols[j].MassSolar() })
	dedup := sols[:0]
	for i, sol := range sols {
		if i > 0 && sol.MassSolar() == dedup[len(dedup)-1].MassSolar() {
			continue
		}
		dedup = append(dedup, sol)
	}
	return dedup
}

// AtMass linearly interpolates the sequence properties at the target mass
// (solar units). The second return is false when the target lies outside
// the achieved mass range or fewer than two entries exist.
func (seq Sequence) AtMass(target float64) (MassPoint, bool) {
	sols := seq.byMass()
	if len(sols) < 2 {
		return MassPoint{}, false
	}
	if target < sols[0].MassSolar() || target > sols[len(sols)-1].MassSolar() {
		return MassPoint{}, false
	}
	i := sort.Search(len(sols), func(i int) bool { return sols[i].MassSolar() >= target }) - 1
	if i < 0 {
		i = 0
	}
	if i > len(sols)-2 {
		i = len(sols) - 2
	}
	lo, hi := sols[i], sols[i+1]
	frac := (target - lo.MassSolar()) / (hi.MassSolar() - lo.MassSolar())
	lerp := func(a, b float64) float64 { return a + frac*(b-a) }
	loK2, loLam := lo.Love()
	hiK2, hiLam := hi.Love()
	return MassPoint{
		MSolar: target,
		Pc:     lerp(lo.CentralPressure(), hi.CentralPressure()),
		R:      lerp(lo.Radius(), hi.Radius()),
		K2:     lerp(loK2, hiK2),
		Lambda: lerp(loLam, hiLam),
	}, true
}

// AtMassCubic interpolates the sequence properties at the target mass with
// a natural cubic spline over the valid entries. Falls back to linear
// interpolation when fewer than three entries exist.
func (seq Sequence) AtMassCubic(target float64) (MassPoint, bool) {
	sols := seq.byMass()
	if len(sols) < 3 {
		return seq.AtMass(target)
	}
	if target < sols[0].MassSolar() || target > sols[len(sols)-1].MassSolar() {
		return MassPoint{}, false
	}
	x := make([]float64, len(sols))
	for i, sol := range sols {
		x[i] = sol.MassSolar()
	}
	prop := func(get func(Solution) float64) float64 {
		y := make([]float64, len(sols))
		for i, sol := range sols {
			y[i] = get(sol)
		}
		return splineAt(x, y, target)
	}
	return MassPoint{
		MSolar: target,
		Pc:     prop(func(s Solution) float64 { return s.CentralPressure() }),
		R:      prop(func(s Solution) float64 { return s.Radius() }),
		K2:     prop(func(s Solution) float64 { k2, _ := s.Love(); return k2 }),
		Lambda: prop(func(s Solution) float64 { _, lam := s.Love(); return lam }),
	}, true
}

// splineAt evaluates the natural cubic spline through (x, y) at xq. The
// second-derivative system is solved densely via mat64; the sequences
// involved are a few hundred points at most, so no banded solver is
// needed.
func splineAt(x, y []float64, xq float64) float64 {
	n := len(x)
	// Second derivatives m solve the tridiagonal natural-spline system.
	a := mat64.NewDense(n, n, nil)
	b := mat64.NewDense(n, 1, nil)
	a.Set(0, 0, 1)
	a.Set(n-1, n-1, 1)
	for i := 1; i < n-1; i++ {
		h0 := x[i] - x[i-1]
		h1 := x[i+1] - x[i]
		a.Set(i, i-1, h0/6)
		a.Set(i, i, (h0+h1)/3)
		a.Set(i, i+1, h1/6)
		b.Set(i, 0, (y[i+1]-y[i])/h1-(y[i]-y[i-1])/h0)
	}
	var m mat64.Dense
	if err := m.Solve(a, b); err != nil {
		// Singular spacing; degrade to the nearest sample.
		i := sort.SearchFloat64s(x, xq)
		if i >= n {
			i = n - 1
		}
		return y[i]
	}
	i := sort.SearchFloat64s(x, xq) - 1
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	h := x[i+1] - x[i]
	t0 := (x[i+1] - xq) / h
	t1 := (xq - x[i]) / h
	m0 := m.At(i, 0)
	m1 := m.At(i+1, 0)
	return t0*y[i] + t1*y[i+1] +
		((t0*t0*t0-t0)*m0+(t1*t1*t1-t1)*m1)*h*h/6
}

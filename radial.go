package tov

import (
	"sync"
)

// Profile is the radial structure of a single star: the accepted
// integration samples plus every auxiliary EOS column evaluated at p(r).
type Profile struct {
	Star    Star
	R       []float64            // radii, code units
	M       []float64            // enclosed mass at each radius
	Columns map[string][]float64 // "p" plus every auxiliary column at p(r)
}

// ComputeProfile solves the background equations for one central pressure
// while streaming the radial samples, then interpolates all non-pressure
// columns along the pressure profile.
func ComputeProfile(eos *EOS, pc float64, cfg Config) Profile {
	cfg = cfg.finalized()
	ch := make(chan ProfilePoint, 1000)
	var rs, ms, ps []float64
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for pt := range ch {
			rs = append(rs, pt.R)
			ms = append(ms, pt.M)
			ps = append(ps, pt.P)
		}
	}()
	b := NewBackground(eos, pc, cfg)
	b.StreamTo(ch)
	star := b.Solve()
	wg.Wait()

	prof := Profile{Star: star, R: rs, M: ms, Columns: map[string][]float64{"p": ps}}
	interp := eos.Clone()
	for _, col := range interp.ColNames() {
		if col == "p" {
			continue
		}
		vals := make([]float64, len(ps))
		// Going back inward the pressure rises monotonically, which the
		// bracket cursor handles just as cheaply as the outward march.
		for i, p := range ps {
			vals[i] = interp.Value(col, p)
		}
		prof.Columns[col] = vals
	}
	return prof
}

// ComputeProfiles generates radial profiles for num stars spanning the
// tabulated pressure range, dropping stars without a surface.
func ComputeProfiles(eos *EOS, num int, cfg Config) []Profile {
	cfg = cfg.finalized()
	cfg.NumStars = num
	profiles := make([]Profile, 0, num)
	for _, pc := range centralPressures(eos, cfg) {
		prof := ComputeProfile(eos, pc, cfg)
		if len(prof.R) == 0 || !prof.Star.Valid {
			cfg.Logger.Log("level", "warning", "subsys", "radial", "status", "skipped", "pc", pc)
			continue
		}
		profiles = append(profiles, prof)
	}
	return profiles
}

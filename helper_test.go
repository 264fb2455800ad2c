package tov

import "testing"

// linearEOS is the two-row e=2p table used across the solver tests.
func linearEOS(t *testing.T) *EOS {
	t.Helper()
	eos, err := NewEOS("linear", []string{"p", "e"}, map[string][]float64{
		"p": {1e-4, 1.0},
		"e": {2e-4, 2.0},
	})
	if err != nil {
		t.Fatalf("building linear EOS: %s", err)
	}
	return eos
}

// uniformEOS has a constant energy density (incompressible fluid), whose
// interior solution is known in closed form.
func uniformEOS(t *testing.T, density float64) *EOS {
	t.Helper()
	eos, err := NewEOS("uniform", []string{"p", "e"}, map[string][]float64{
		"p": {1e-6, 10.0},
		"e": {density, density},
	})
	if err != nil {
		t.Fatalf("building uniform EOS: %s", err)
	}
	return eos
}

// quietConfig keeps the sweep logs out of the test output.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = nopLogger{}
	return cfg
}

type nopLogger struct{}

func (nopLogger) Log(kv ...interface{}) error { return nil }

package tov

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	toml := `[eos]
file = "inputCode/hsdd2.csv"

[solver]
rmax = 30.0
step = 0.005
stars = 300
workers = 4

[export]
path = "export/MR"
csv = true

[report]
mass = 1.6
`
	if err := os.WriteFile(filepath.Join(dir, "hsdd2.toml"), []byte(toml), 0644); err != nil {
		t.Fatalf("writing scenario: %s", err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %s", err)
	}
	defer os.Chdir(wd)

	scen, err := LoadScenario("hsdd2")
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	if scen.EOSPath != "inputCode/hsdd2.csv" {
		t.Fatalf("wrong EOS path %q", scen.EOSPath)
	}
	if scen.Solver.RMax != 30 || scen.Solver.Dr != 0.005 || scen.Solver.NumStars != 300 || scen.Solver.Workers != 4 {
		t.Fatalf("solver config mismatch: %+v", scen.Solver)
	}
	if !scen.Export.AsCSV || scen.Export.OutputDir != "export/MR" {
		t.Fatalf("export config mismatch: %+v", scen.Export)
	}
	if scen.TargetMass != 1.6 {
		t.Fatalf("target mass %v, expected 1.6", scen.TargetMass)
	}
}

func TestLoadScenarioDefaults(t *testing.T) {
	dir := t.TempDir()
	toml := "[eos]\nfile = \"test.csv\"\n"
	if err := os.WriteFile(filepath.Join(dir, "minimal.toml"), []byte(toml), 0644); err != nil {
		t.Fatalf("writing scenario: %s", err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %s", err)
	}
	defer os.Chdir(wd)

	scen, err := LoadScenario("minimal")
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	if scen.TargetMass != 1.4 {
		t.Fatalf("target mass default %v, expected 1.4", scen.TargetMass)
	}
	// Zero solver fields must fall back to the reference settings.
	solved := scen.Solver.finalized()
	def := DefaultConfig()
	if solved.RMax != def.RMax || solved.Dr != def.Dr || solved.NumStars != def.NumStars {
		t.Fatalf("defaults not applied: %+v", solved)
	}
}

func TestLoadScenarioMissing(t *testing.T) {
	if _, err := LoadScenario("definitely-not-there"); err == nil {
		t.Fatal("expected an error for a missing scenario")
	}
}

func TestLoadScenarioMissingEOS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "noeos.toml"), []byte("[solver]\nrmax = 10.0\n"), 0644); err != nil {
		t.Fatalf("writing scenario: %s", err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %s", err)
	}
	defer os.Chdir(wd)
	if _, err := LoadScenario("noeos"); err == nil {
		t.Fatal("expected an error when eos.file is missing")
	}
}

package tov

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteStarsCSV(t *testing.T) {
	eos := linearEOS(t)
	cfg := sweepConfig(12)
	seq := ComputeSequence(eos, cfg)
	if len(seq.Entries) == 0 {
		t.Fatal("need a non-empty sequence")
	}
	conf := ExportConfig{Filename: "linear", OutputDir: t.TempDir(), AsCSV: true}
	path, err := WriteStarsCSV(conf, seq)
	if err != nil {
		t.Fatalf("write: %s", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %s", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %s", err)
	}
	if len(records) != len(seq.Entries)+1 {
		t.Fatalf("expected %d lines, got %d", len(seq.Entries)+1, len(records))
	}
	if strings.Join(records[0], ",") != "p_c,R,M,e(pc)" {
		t.Fatalf("unexpected header %v", records[0])
	}
}

func TestWriteTidalCSV(t *testing.T) {
	eos := linearEOS(t)
	seq := ComputeTidalSequence(eos, sweepConfig(8))
	conf := ExportConfig{Filename: "linear", OutputDir: t.TempDir(), AsCSV: true}
	path, err := WriteTidalCSV(conf, seq)
	if err != nil {
		t.Fatalf("write: %s", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %s", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "p_c,R,M_code,M_solar,Lambda,k2" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if len(lines) != len(seq.Entries)+1 {
		t.Fatalf("expected %d lines, got %d", len(seq.Entries)+1, len(lines))
	}
}

func TestWriteProfilesJSON(t *testing.T) {
	eos := linearEOS(t)
	cfg := sweepConfig(4)
	cfg.Dr = 2e-3
	profiles := ComputeProfiles(eos, 4, cfg)
	if len(profiles) == 0 {
		t.Fatal("need at least one profile")
	}
	dir := t.TempDir()
	conf := ExportConfig{Filename: "linear", OutputDir: dir, AsJSON: true}
	path, err := WriteProfilesJSON(conf, profiles)
	if err != nil {
		t.Fatalf("write: %s", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %s", err)
	}
	var records []profileRecord
	if err = json.Unmarshal(data, &records); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if len(records) != len(profiles) {
		t.Fatalf("expected %d records, got %d", len(profiles), len(records))
	}
	if records[0].RadialPoints != len(records[0].Radii) {
		t.Fatal("radial point count inconsistent")
	}
	if _, err = os.Stat(filepath.Join(dir, "linear_metadata.txt")); err != nil {
		t.Fatalf("metadata file missing: %s", err)
	}
}

func TestExportConfigIsUseless(t *testing.T) {
	if !(ExportConfig{}).IsUseless() {
		t.Fatal("empty config must be useless")
	}
	if (ExportConfig{Filename: "x", AsCSV: true}).IsUseless() {
		t.Fatal("CSV config must be useful")
	}
	if !(ExportConfig{AsCSV: true}).IsUseless() {
		t.Fatal("config without a filename must be useless")
	}
}

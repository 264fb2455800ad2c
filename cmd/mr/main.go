package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	kitlog "github.com/go-kit/kit/log"

	tov "github.com/PsiPhiDelta/TOVExtravaganza"
)

// This tool reads a scenario, sweeps the mass-radius family of its EOS and
// writes the star CSV.

const defaultScenario = "~~unset~~"

var (
	scenario string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "sweep scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	scen, err := tov.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("%s", err)
	}

	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "cmd", "mr", "scenario", scenario)
	scen.Solver.Logger = klog

	eos, err := tov.LoadCSV(scen.EOSPath)
	if err != nil {
		log.Fatalf("%s", err)
	}
	if verbose {
		klog.Log("level", "info", "subsys", "eos", "points", eos.Len(), "columns", strings.Join(eos.ColNames(), ","))
	}

	seq := tov.ComputeSequence(eos, scen.Solver)
	klog.Log("level", "notice", "subsys", "sweep", "status", "finished", "stars", len(seq.Entries), "skipped", seq.Skipped)

	if best, found := seq.MaxMass(); found {
		klog.Log("level", "info", "subsys", "report", "maxMass(Msun)", best.MassSolar(), "R", best.Radius(), "pc", best.CentralPressure())
	}
	if pt, found := seq.AtMass(scen.TargetMass); found {
		klog.Log("level", "info", "subsys", "report", "atMass(Msun)", scen.TargetMass, "R", pt.R)
	} else {
		klog.Log("level", "warning", "subsys", "report", "atMass(Msun)", scen.TargetMass, "status", "outside achieved mass range")
	}

	if scen.Export.IsUseless() {
		scen.Export.Filename = eos.Name
	}
	if path, err := tov.WriteStarsCSV(withCSV(scen.Export), seq); err != nil {
		log.Fatalf("%s", err)
	} else {
		klog.Log("level", "notice", "subsys", "export", "file", filepath.Clean(path))
	}
}

func withCSV(conf tov.ExportConfig) tov.ExportConfig {
	conf.AsCSV = true
	return conf
}

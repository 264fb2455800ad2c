package main

import (
	"flag"
	"log"
	"os"
	"strings"

	kitlog "github.com/go-kit/kit/log"

	tov "github.com/PsiPhiDelta/TOVExtravaganza"
)

// This tool sweeps the tidal deformability of a star family and writes the
// tidal CSV.

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
	klog = kitlog.With(klog, "cmd", "tidal", "scenario", scenario)
	scen.Solver.Logger = klog

	eos, err := tov.LoadCSV(scen.EOSPath)
	if err != nil {
		log.Fatalf("%s", err)
	}
	if verbose {
		klog.Log("level", "info", "subsys", "eos", "points", eos.Len(), "columns", strings.Join(eos.ColNames(), ","))
	}

	seq := tov.ComputeTidalSequence(eos, scen.Solver)
	klog.Log("level", "notice", "subsys", "sweep", "status", "finished", "stars", len(seq.Entries), "skipped", seq.Skipped)

	if best, found := seq.MaxMass(); found {
		k2, lambda := best.Love()
		klog.Log("level", "info", "subsys", "report", "maxMass(Msun)", best.MassSolar(), "k2", k2, "Lambda", lambda)
	}
	if pt, found := seq.AtMassCubic(scen.TargetMass); found {
		klog.Log("level", "info", "subsys", "report", "atMass(Msun)", scen.TargetMass, "R", pt.R, "k2", pt.K2, "Lambda", pt.Lambda)
	} else {
		klog.Log("level", "warning", "subsys", "report", "atMass(Msun)", scen.TargetMass, "status", "outside achieved mass range")
	}

	if scen.Export.Filename == "" {
		scen.Export.Filename = eos.Name
	}
	scen.Export.AsCSV = true
	if path, err := tov.WriteTidalCSV(scen.Export, seq); err != nil {
		log.Fatalf("%s", err)
	} else {
		klog.Log("level", "notice", "subsys", "export", "file", path)
	}
}

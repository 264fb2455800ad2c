package main

import (
	"flag"
	"log"
	"os"
	"strings"

	kitlog "github.com/go-kit/kit/log"

	tov "github.com/PsiPhiDelta/TOVExtravaganza"
)

// This tool exports radial profiles (r, M(r), p(r) and every auxiliary EOS
// column along the star) for a handful of stars across the family.

const defaultScenario = "~~unset~~"

var (
	scenario string
	numStars int
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "sweep scenario TOML file")
	flag.IntVar(&numStars, "stars", 10, "number of stars to profile")
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
	klog = kitlog.With(klog, "cmd", "radial", "scenario", scenario)
	scen.Solver.Logger = klog

	eos, err := tov.LoadCSV(scen.EOSPath)
	if err != nil {
		log.Fatalf("%s", err)
	}

	profiles := tov.ComputeProfiles(eos, numStars, scen.Solver)
	if len(profiles) == 0 {
		log.Fatal("no valid stars found, check the EOS table")
	}
	for i, prof := range profiles {
		klog.Log("level", "info", "subsys", "radial", "star", i, "pc", prof.Star.Pc, "R", prof.Star.R, "M(Msun)", prof.Star.MassSolar(), "points", len(prof.R))
	}

	if scen.Export.Filename == "" {
		scen.Export.Filename = eos.Name
	}
	scen.Export.AsJSON = true
	if path, err := tov.WriteProfilesJSON(scen.Export, profiles); err != nil {
		log.Fatalf("%s", err)
	} else {
		klog.Log("level", "notice", "subsys", "export", "file", path)
	}
}

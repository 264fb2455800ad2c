package tov

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Scenario is a full run description loaded from a TOML file: which EOS to
// read, how to integrate, and what to write. Each load uses its own viper
// instance so independent runs never share state.
type Scenario struct {
	EOSPath    string
	Solver     Config
	Export     ExportConfig
	TargetMass float64 // solar masses for the interpolation report
}

// LoadScenario reads <name>.toml from the current directory. Only the EOS
// file is mandatory; every other key falls back to the solver defaults.
//
//	[eos]
//	file = "inputCode/hsdd2.csv"
//	[solver]
//	rmax = 100.0
//	step = 0.001
//	stars = 500
//	workers = 4
//	[export]
//	path = "export/MR"
//	csv = true
//	json = false
//	[report]
//	mass = 1.4
func LoadScenario(name string) (Scenario, error) {
	v := viper.New()
	v.SetConfigName(name)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, errors.Wrapf(err, "./%s.toml", name)
	}
	s := Scenario{
		EOSPath: v.GetString("eos.file"),
		Solver: Config{
			RMax:     v.GetFloat64("solver.rmax"),
			Dr:       v.GetFloat64("solver.step"),
			NumStars: v.GetInt("solver.stars"),
			PFloor:   v.GetFloat64("solver.pfloor"),
			Workers:  v.GetInt("solver.workers"),
		},
		Export: ExportConfig{
			Filename:  v.GetString("export.filename"),
			OutputDir: v.GetString("export.path"),
			AsCSV:     v.GetBool("export.csv"),
			AsJSON:    v.GetBool("export.json"),
		},
		TargetMass: v.GetFloat64("report.mass"),
	}
	if s.EOSPath == "" {
		return Scenario{}, errors.Errorf("%s.toml: missing eos.file", name)
	}
	if s.TargetMass <= 0 {
		s.TargetMass = 1.4
	}
	return s, nil
}

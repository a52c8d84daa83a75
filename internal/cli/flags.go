package cli

import "gtp/internal/config"

// Flags holds command-line flags
type Flags struct {
	Only       string
	Skip       string
	Suite      string
	Color      string
	TestCases  bool
	Verbose    bool
	NoSave     bool
	NoProgress bool
	OpenFails  bool
	Limit      int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Only:       f.Only,
		Skip:       f.Skip,
		Suite:      f.Suite,
		Color:      f.Color,
		TestCases:  f.TestCases,
		Verbose:    f.Verbose,
		NoSave:     f.NoSave,
		NoProgress: f.NoProgress,
		OpenFails:  f.OpenFails,
		Limit:      f.Limit,
	}
}

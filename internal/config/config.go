package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Output settings
	OutputDir   string
	ReportFile  string
	HistoryFile string

	// Display settings
	Color string

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		OutputDir:   DefaultOutputDir,
		ReportFile:  DefaultReportFile,
		HistoryFile: DefaultHistoryFile,
		Color:       DefaultColor,
	}
}

// FromEnv creates a config from defaults and GTP_* environment variables.
// A .env file in the working directory is read first when present; real
// environment variables win over it.
func FromEnv() *Config {
	_ = godotenv.Load()

	cfg := New()
	if v := os.Getenv("GTP_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("GTP_REPORT_FILE"); v != "" {
		cfg.ReportFile = v
	}
	if v := os.Getenv("GTP_HISTORY_FILE"); v != "" {
		cfg.HistoryFile = v
	}
	if v := os.Getenv("GTP_COLOR"); v != "" {
		cfg.Color = v
	}
	return cfg
}

// Load creates a config from the environment and applies flags
func Load(flags Flags) *Config {
	cfg := FromEnv()
	cfg.Flags = flags

	// Apply flag overrides
	if flags.Color != "" {
		cfg.Color = flags.Color
	}

	return cfg
}

// GetReportPath returns the full path to the report JSON file.
// Resolves to an absolute path so run and fails always read/write the same
// file regardless of cwd.
func (c *Config) GetReportPath() string {
	return c.outputPath(c.ReportFile)
}

// GetHistoryPath returns the full path to the run history database.
func (c *Config) GetHistoryPath() string {
	return c.outputPath(c.HistoryFile)
}

func (c *Config) outputPath(file string) string {
	p := filepath.Join(c.OutputDir, file)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// HarnessArgs returns the selection arguments forwarded to every suite.
func (c *Config) HarnessArgs() []string {
	var args []string
	if c.Flags.Only != "" {
		args = append(args, "--only", c.Flags.Only)
	}
	if c.Flags.Skip != "" {
		args = append(args, "--skip", c.Flags.Skip)
	}
	return args
}

package config

const (
	// DefaultOutputDir is the default output directory
	DefaultOutputDir = "storage"
	// DefaultReportFile is the default report JSON file name
	DefaultReportFile = "test-results.json"
	// DefaultHistoryFile is the default run history database file name
	DefaultHistoryFile = "history.db"
	// DefaultColor is the default color mode for processor output
	DefaultColor = "auto"
)

package domain

// RunMeta contains metadata about a processor run
type RunMeta struct {
	TotalSuites     int     `json:"total_suites"`
	PassedSuites    int     `json:"passed_suites"`
	FailedSuites    int     `json:"failed_suites"`
	TotalCases      int     `json:"total_cases"`
	FailedCases     int     `json:"failed_cases"`
	SkippedCases    int     `json:"skipped_cases"`
	EmptyCases      int     `json:"empty_cases"`
	Checks          int     `json:"checks"`
	Errors          int     `json:"errors"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunReport is the complete persisted output of a processor run
type RunReport struct {
	Meta    RunMeta       `json:"meta"`
	Details []CaseFailure `json:"details"`
}

package domain

// HistoryRecord is one row of the persistent run history
type HistoryRecord struct {
	ID              int64   `json:"id"`
	Timestamp       string  `json:"timestamp"`
	TotalSuites     int     `json:"total_suites"`
	FailedSuites    int     `json:"failed_suites"`
	Checks          int     `json:"checks"`
	Errors          int     `json:"errors"`
	DurationSeconds float64 `json:"duration_seconds"`
}

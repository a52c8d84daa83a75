package domain

// CaseFailure represents a failed test case within a suite run
type CaseFailure struct {
	Suite    string `json:"suite"`
	CaseName string `json:"case_name"`
	CaseID   int    `json:"case_id"`
	Line     int    `json:"line"`
	Detail   string `json:"detail"`
	Resolved bool   `json:"resolved,omitempty"` // Track if test case is marked as resolved
}

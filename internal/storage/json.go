package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gtp/internal/domain"
	"gtp/runner"
	"gtp/tester"
)

// Save builds a report from suite results, writes it to the configured JSON
// report file and returns it.
func (s *JSONStorage) Save(results []runner.Result, failures []domain.CaseFailure, duration time.Duration) (*domain.RunReport, error) {
	report := BuildReport(results, failures, duration)
	if err := s.SaveReport(report); err != nil {
		return nil, err
	}
	return report, nil
}

// Load reads the last run report from the configured JSON report file.
func (s *JSONStorage) Load() (*domain.RunReport, error) {
	path := s.cfg.GetReportPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}

// SaveReport writes the full report to the configured JSON file (e.g. after
// marking failures resolved in the viewer).
func (s *JSONStorage) SaveReport(report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := s.cfg.GetReportPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// BuildReport aggregates suite results into a persistable run report.
func BuildReport(results []runner.Result, failures []domain.CaseFailure, duration time.Duration) *domain.RunReport {
	meta := domain.RunMeta{
		TotalSuites:     len(results),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	for _, r := range results {
		if r.Failed() {
			meta.FailedSuites++
		} else {
			meta.PassedSuites++
		}
		meta.TotalCases += r.Summary.Selected
		meta.EmptyCases += r.Summary.Empty
		meta.Checks += r.Summary.Checks
		meta.Errors += r.Summary.Errors
		for _, c := range r.Cases {
			switch c.Outcome {
			case tester.Failed:
				meta.FailedCases++
			case tester.Skipped:
				meta.SkippedCases++
			}
		}
	}
	return &domain.RunReport{Meta: meta, Details: failures}
}

// CollectFailures extracts the failed cases of all suite results, in run
// order, for the report's details section.
func CollectFailures(results []runner.Result) []domain.CaseFailure {
	var failures []domain.CaseFailure
	for _, r := range results {
		for _, c := range r.Cases {
			if c.Outcome != tester.Failed {
				continue
			}
			failures = append(failures, domain.CaseFailure{
				Suite:    r.Name,
				CaseName: c.Name,
				CaseID:   c.ID,
				Line:     c.Line,
				Detail:   c.Detail,
			})
		}
	}
	return failures
}

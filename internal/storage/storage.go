package storage

import (
	"time"

	"gtp/internal/config"
	"gtp/internal/domain"
	"gtp/runner"
)

// Storage persists and loads run reports (e.g. for the fails viewer).
type Storage interface {
	Save(results []runner.Result, failures []domain.CaseFailure, duration time.Duration) (*domain.RunReport, error)
	Load() (*domain.RunReport, error)
	// SaveReport writes the full report (e.g. after resolved-state updates).
	SaveReport(report *domain.RunReport) error
}

// JSONStorage stores reports in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's report path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

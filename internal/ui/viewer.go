package ui

import "gtp/internal/domain"

// Viewer displays test failures in an interactive TUI
type Viewer interface {
	View(report *domain.RunReport) error
}

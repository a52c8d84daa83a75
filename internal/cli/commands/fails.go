package commands

import (
	"github.com/spf13/cobra"

	"gtp/internal/cli"
	"gtp/internal/config"
	"gtp/internal/storage"
	"gtp/internal/ui"
)

// FailsCommand handles the fails command
type FailsCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewFailsCommand creates a new FailsCommand
func NewFailsCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *FailsCommand {
	return &FailsCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (fc *FailsCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := fc.storage.Load()
	if err != nil {
		return cli.WrapExitError(cli.ExitCommandError, "no saved run report", err)
	}

	return fc.viewer.View(report)
}

package commands

import (
	"os"

	"github.com/spf13/cobra"

	"gtp/internal/cli"
	"gtp/internal/config"
	"gtp/internal/storage"
	"gtp/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config  *config.Config
	history *storage.History
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, history *storage.History) *HistoryCommand {
	return &HistoryCommand{
		config:  cfg,
		history: history,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	records, err := hc.history.List(hc.config.Flags.Limit)
	if err != nil {
		return cli.WrapExitError(cli.ExitCommandError, "failed to read run history", err)
	}

	formatter := ui.NewFormatter(hc.config, os.Stdout)
	return formatter.PrintHistory(records)
}

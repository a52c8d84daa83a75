package commands

import (
	"github.com/spf13/cobra"

	"gtp/internal/cli"
	"gtp/internal/config"
	"gtp/internal/storage"
	"gtp/internal/ui"
	"gtp/runner"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Fails   *FailsCommand
	History *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, entries []runner.Entry) *Commands {
	// Initialize dependencies
	filter := runner.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)
	history := storage.NewHistory(cfg.GetHistoryPath())
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:     NewRunCommand(cfg, entries, filter, jsonStorage, history, errorViewer),
		List:    NewListCommand(cfg, entries, filter, jsonStorage),
		Fails:   NewFailsCommand(cfg, jsonStorage, errorViewer),
		History: NewHistoryCommand(cfg, history),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run registered test suites",
		Long:  "Execute every registered test suite sequentially and save a run report",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Flags = flags.ToConfigFlags()
			if flags.Color != "" {
				cfg.Color = flags.Color
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&flags.Only, "only", "", "Run only these case ordinals in every suite (space-separated, e.g. \"1 5 12\")")
	runCmd.Flags().StringVar(&flags.Skip, "skip", "", "Skip these case ordinals in every suite (space-separated)")
	runCmd.Flags().StringVarP(&flags.Suite, "suite", "s", "", "Filter suites by name pattern (supports wildcards, e.g. 'Calc*' or '*Text*')")
	runCmd.Flags().StringVar(&flags.Color, "color", "", "Color mode for processor output: on, off or auto")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print every suite's full report after the run")
	runCmd.Flags().BoolVar(&flags.NoSave, "no-save", false, "Do not write the report file or record run history")
	runCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Disable the progress bar")
	runCmd.Flags().BoolVar(&flags.OpenFails, "open-fails", false, "Open the fails viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered test suites",
		Long:  "List every registered suite and its test cases without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.Suite, "suite", "s", "", "Filter suites by name pattern (supports wildcards, e.g. 'Calc*' or '*Text*')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases under every suite")
	rootCmd.AddCommand(listCmd)

	// Fails command
	failsCmd := &cobra.Command{
		Use:   "fails",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last run in an interactive viewer",
		RunE:  c.Fails.Execute,
	}
	rootCmd.AddCommand(failsCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded run history",
		Long:  "Display previous runs recorded in the history database, newest first",
		RunE:  c.History.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 0, "Show at most this many runs (0 shows all)")
	rootCmd.AddCommand(historyCmd)
}

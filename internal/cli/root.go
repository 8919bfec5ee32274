package cli

import (
	"log/slog"

	"github.com/alexanderramin/horizon/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services CLI commands run against.
type App struct {
	Milestones service.MilestoneService
	Parents    service.ParentService
	Profile    service.ProfileService
	Import     service.ImportService
	Valuation  service.ValuationService

	// LogLevel, when set, is lowered to debug by --verbose.
	LogLevel *slog.LevelVar
}

// NewRootCmd creates the top-level "horizon" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "horizon",
		Short:        "Value life milestones and lay them out on a timeline",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose && app.LogLevel != nil {
				app.LogLevel.Set(slog.LevelDebug)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log use cases and data issues to stderr")

	root.AddCommand(
		newMilestoneCmd(app),
		newParentCmd(app),
		newProfileCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newValueCmd(app),
		newTimelineCmd(app),
		newCheckCmd(app),
	)

	return root
}

package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timetrack/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Timesheet service.TimesheetService
	Projects  service.ProjectService
	Settings  service.SettingsService

	// Configure, when set, runs after flag parsing and before any command.
	// It is where the process wires services for the chosen config file.
	Configure func(ctx context.Context, opts GlobalOptions) error

	// IsInteractive reports whether prompts and the live view may be shown.
	IsInteractive func() bool

	Logger  *zap.Logger
	Options GlobalOptions
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "tt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tt",
		Short: "Event-log timesheet: begin, pause, switch and end work, then report the week",
		Long: `tt records work as an append-only log of begin, end, pause and switch
events and folds it into a per-project, per-day report of the week.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Configure == nil {
				return nil
			}
			if err := app.Configure(cmd.Context(), app.Options); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&app.Options.Verbose, "verbose", "v", app.Options.Verbose, "Log what is written where")
	flags.StringVarP(&app.Options.ConfigPath, "config", "c", app.Options.ConfigPath, "Path to the config file")

	root.AddCommand(
		newBeginCmd(app),
		newEndCmd(app),
		newPauseCmd(app),
		newSwitchCmd(app),
		newNevermindCmd(app),
		newNewProjectCmd(app),
		newProjectsCmd(app),
		newShowCmd(app),
		newLogCmd(app),
		newSheetCmd(app),
		newWatchCmd(app),
	)

	return root
}

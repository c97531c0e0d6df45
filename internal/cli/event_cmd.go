package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timetrack/internal/cli/formatter"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// offsetFlag registers -d/--duration on fs.
func offsetFlag(fs *pflag.FlagSet, target *time.Duration, usage string) {
	fs.DurationVarP(target, "duration", "d", 0, usage)
}

func newBeginCmd(app *App) *cobra.Command {
	var offset time.Duration

	cmd := &cobra.Command{
		Use:   "begin",
		Short: "Begin a work session",
		Example: `  tt begin
  tt begin -d 15m     # started 15 minutes ago`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Timesheet.Begin(cmd.Context(), offset)
			return reportRecorded(cmd, app, rec, err)
		},
	}
	offsetFlag(cmd.Flags(), &offset, "Claim an earlier start (negative for later)")
	return cmd
}

func newEndCmd(app *App) *cobra.Command {
	var offset time.Duration

	cmd := &cobra.Command{
		Use:   "end",
		Short: "End the running work session",
		Example: `  tt end
  tt end -d 10m       # stop counting 10 minutes from now
  tt end -d -5m       # stopped 5 minutes ago`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Timesheet.End(cmd.Context(), offset)
			return reportRecorded(cmd, app, rec, err)
		},
	}
	offsetFlag(cmd.Flags(), &offset, "Claim a later end (negative for earlier)")
	return cmd
}

func newPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause DURATION",
		Short: "Exclude a break from the running session",
		Example: `  tt pause 30m
  tt pause 1h15m
  tt pause 45          # minutes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := parsePauseLength(args[0])
			if err != nil {
				return err
			}
			rec, err := app.Timesheet.Pause(cmd.Context(), length)
			return reportRecorded(cmd, app, rec, err)
		},
	}
}

// parsePauseLength accepts Go duration syntax or a bare number of minutes.
func parsePauseLength(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		return time.Duration(n) * time.Minute, nil
	}
	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid pause length %q: use e.g. 30m, 1h15m or 45", input)
	}
	return d, nil
}

func newSwitchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "switch PROJECT",
		Short: "Switch the active project by name or id",
		Example: `  tt switch website
  tt switch 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := domain.ParseProjectRef(args[0])
			if err != nil {
				return err
			}
			rec, err := app.Timesheet.Switch(cmd.Context(), ref)
			return reportRecorded(cmd, app, rec, err)
		},
	}
}

func newNevermindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "nevermind",
		Aliases: []string{"undo"},
		Short:   "Remove the most recent event",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Timesheet.Undo(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRemoved(removed))
			verboseWritten(cmd, app)
			return nil
		},
	}
}

func reportRecorded(cmd *cobra.Command, app *App, rec *service.Recorded, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecorded(rec.Event, rec.Project))
	verboseWritten(cmd, app)
	return nil
}

// verboseWritten tells the user which sheet was written.
func verboseWritten(cmd *cobra.Command, app *App) {
	if !app.Options.Verbose || app.Settings == nil {
		return
	}
	info, err := app.Settings.Timesheet(cmd.Context())
	if err != nil {
		app.logger().Debug("describing timesheet", zap.Error(err))
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("Written to %s (%s, %d events)", info.Path, info.Format, info.Events)))
}

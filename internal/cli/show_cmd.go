package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/timetrack/internal/cli/formatter"
	"github.com/alexanderramin/timetrack/internal/service"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var weeks int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the week report",
		Example: `  tt show
  tt show --weeks 4
  tt show --weeks 0   # every week in the timesheet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := app.Timesheet.Report(cmd.Context(), service.ReportRequest{Weeks: weeks})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(reportView(rep)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&weeks, "weeks", "w", 1, "Number of most recent weeks to show (0 for all)")
	return cmd
}

func reportView(rep *service.Report) formatter.ReportView {
	return formatter.ReportView{
		Now:      rep.Now,
		Tables:   rep.Tables,
		Active:   rep.Active,
		Running:  rep.Running,
		Warnings: rep.Warnings,
		Projects: rep.Projects,
	}
}

func newLogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "List the raw events of the timesheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sheet, err := app.Timesheet.Events(ctx)
			if err != nil {
				return err
			}
			reg, err := app.Projects.List(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEventLog(sheet, reg, time.Now()))
			return nil
		},
	}
}

func newSheetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sheet [PATH]",
		Short: "Show or change the timesheet file in use",
		Long: `Without arguments, show which timesheet is in use. With PATH, use that
file from now on. Paths ending in .json or .time use the JSON layout,
anything else is a SQLite database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				info, err := app.Settings.Timesheet(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Timesheet: %s\n", formatter.Bold(info.Path))
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%s, %d events", info.Format, info.Events)))
				return nil
			}

			info, err := app.Settings.UseTimesheet(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Now using timesheet %s\n", formatter.Bold(info.Path))
			if app.Options.Verbose {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%s, %d events", info.Format, info.Events)))
			}
			return nil
		},
	}
}

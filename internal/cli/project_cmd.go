package cli

import (
	"fmt"

	"github.com/alexanderramin/timetrack/internal/cli/formatter"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/service"
	"github.com/spf13/cobra"
)

func newNewProjectCmd(app *App) *cobra.Command {
	var name, category, description string
	var id int

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Register a new project",
		Long: `Register a new project. Without --name an interactive form is shown;
in scripts pass the fields as flags.`,
		Example: `  tt new
  tt new --name website --category client --id 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var p domain.Project
			if name != "" {
				p = domain.Project{ID: id, Name: name, Category: category, Description: description}
			} else {
				if !app.interactive() {
					return fmt.Errorf("--name is required when not running in a terminal")
				}
				existing, err := app.Projects.List(ctx)
				if err != nil {
					return err
				}
				draft := projectDraft{Category: category, Description: description}
				if err := newProjectForm(existing, &draft).RunWithContext(ctx); err != nil {
					return err
				}
				if p, err = draft.project(); err != nil {
					return err
				}
			}

			created, err := app.Projects.Create(ctx, p)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectCreated(created))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().IntVar(&id, "id", 0, "Project id (default: next free id)")
	cmd.Flags().StringVar(&category, "category", "", "Category shown in reports")
	cmd.Flags().StringVar(&description, "description", "", "Free-form description")

	return cmd
}

func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "projects",
		Aliases: []string{"ls"},
		Short:   "List registered projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg, err := app.Projects.List(ctx)
			if err != nil {
				return err
			}
			active := activeProjectID(cmd, app)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(reg, active))
			return nil
		},
	}
}

// activeProjectID marks the current project when the sheet can be folded;
// a broken sheet should not stop the listing.
func activeProjectID(cmd *cobra.Command, app *App) int {
	if app.Timesheet == nil {
		return -1
	}
	rep, err := app.Timesheet.Report(cmd.Context(), service.ReportRequest{Weeks: 1})
	if err != nil {
		return -1
	}
	return rep.Active.ID
}

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timetrack/internal/cli/formatter"
	"github.com/alexanderramin/timetrack/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(app *App) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live view of the current week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("watch needs an interactive terminal; use `tt show` instead")
			}
			if interval < time.Second {
				return fmt.Errorf("--interval must be at least 1s")
			}
			ctx := cmd.Context()
			load := func(ctx context.Context) (*service.Report, error) {
				return app.Timesheet.Report(ctx, service.ReportRequest{Weeks: 1})
			}
			m := newWatchModel(ctx, load, interval)

			// Without file events the interval alone drives refreshes.
			if info, err := app.Settings.Timesheet(ctx); err == nil {
				changes, err := newSheetWatcher(info.Path)
				if err != nil {
					app.logger().Debug("file watch unavailable", zap.Error(err))
				} else {
					defer changes.Close()
					m.changes = changes
				}
			}

			p := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Refresh interval")
	return cmd
}

type reportLoader func(ctx context.Context) (*service.Report, error)

type reportMsg struct {
	report *service.Report
	err    error
	at     time.Time
}

type refreshMsg struct{}

// watchModel re-renders the report on a fixed interval and whenever the
// sheet file changes. The sheet is only read, never written.
type watchModel struct {
	ctx      context.Context
	load     reportLoader
	interval time.Duration
	changes  *sheetWatcher

	spinner   spinner.Model
	report    *service.Report
	err       error
	refreshed time.Time
}

func newWatchModel(ctx context.Context, load reportLoader, interval time.Duration) watchModel {
	return watchModel{
		ctx:      ctx,
		load:     load,
		interval: interval,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(formatter.StylePurple),
		),
	}
}

func (m watchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.fetch(), m.scheduleRefresh()}
	if m.changes != nil {
		cmds = append(cmds, m.changes.next())
	}
	return tea.Batch(cmds...)
}

func (m watchModel) fetch() tea.Cmd {
	return func() tea.Msg {
		rep, err := m.load(m.ctx)
		return reportMsg{report: rep, err: err, at: time.Now()}
	}
}

func (m watchModel) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.fetch()
		}
		return m, nil
	case reportMsg:
		m.refreshed = msg.at
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
		}
		return m, nil
	case refreshMsg:
		return m, tea.Batch(m.fetch(), m.scheduleRefresh())
	case sheetChangedMsg:
		return m, tea.Batch(m.fetch(), m.changes.next())
	case watchErrMsg:
		m.err = msg.err
		return m, m.changes.next()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	status := "loading"
	if !m.refreshed.IsZero() {
		status = "refreshed " + m.refreshed.Format("15:04:05")
	}
	fmt.Fprintf(&b, "%s %s  %s\n\n", m.spinner.View(), formatter.Dim(status), formatter.Dim("r refresh · q quit"))

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}
	if m.report != nil {
		b.WriteString(formatter.FormatReport(reportView(m.report)))
	}
	return b.String()
}

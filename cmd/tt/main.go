package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/timetrack/internal/cli"
	"github.com/alexanderramin/timetrack/internal/config"
	"github.com/alexanderramin/timetrack/internal/repository"
	"github.com/alexanderramin/timetrack/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{
		Options: cli.GlobalOptions{ConfigPath: env.ConfigPath, Verbose: env.Verbose},
	}

	// Detect interactive terminal for the project form and the live view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	var sheet repository.SheetRepo
	defer func() {
		if sheet != nil {
			sheet.Close()
		}
	}()

	app.Configure = func(ctx context.Context, opts cli.GlobalOptions) error {
		logger, err := newLogger(opts.Verbose)
		if err != nil {
			return err
		}
		app.Logger = logger

		configPath := opts.ConfigPath
		if configPath == "" {
			if configPath, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		store := config.NewStore(config.ExpandHome(configPath))
		cfg, err := store.Load()
		if err != nil {
			return err
		}
		cfg.Apply(env)

		// Open timesheet
		sheet, err = repository.OpenSheetRepo(cfg.Timesheet)
		if err != nil {
			return fmt.Errorf("opening timesheet: %w", err)
		}
		logger.Debug("configured",
			zap.String("config", store.Path),
			zap.String("timesheet", cfg.Timesheet),
		)

		// Wire repositories and services
		projectRepo := repository.NewConfigProjectRepo(store)
		settingsRepo := repository.NewConfigSettingsRepo(store)
		svcOpts := []service.Option{
			service.WithLogger(logger),
			service.WithObserver(service.NewZapUseCaseObserver(logger)),
		}

		app.Timesheet = service.NewTimesheetService(sheet, projectRepo, svcOpts...)
		app.Projects = service.NewProjectService(projectRepo, svcOpts...)
		app.Settings = service.NewSettingsService(settingsRepo, sheet, nil, svcOpts...)
		return nil
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	err = rootCmd.ExecuteContext(ctx)
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
	return err
}

// newLogger logs to stderr so report output stays clean. Only errors are
// shown unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

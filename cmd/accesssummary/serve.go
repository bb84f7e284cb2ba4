package main

import (
	"context"
	"fmt"
	"io"

	"access-summary/internal/app"
	"access-summary/internal/schedulers"
	"access-summary/internal/shared/configs"
)

// serveCommand writes its logs to output.
type serveCommand struct {
	output io.Writer
	errOut io.Writer
	getenv func(string) string
}

func newServeCommand(output, errOut io.Writer, getenv func(string) string) *serveCommand {
	return &serveCommand{output: output, errOut: errOut, getenv: getenv}
}

func (c *serveCommand) Description() string {
	return "Run the admin HTTP server and the daily summary scheduler"
}

func (c *serveCommand) Execute(ctx context.Context, args []string) error {
	flags := newFlagSet(schedulers.CommandServe, c.errOut)
	configPath := flags.String("config", defaultConfigPath, "configuration file")
	devReload := flags.Bool("dev", false, "running under a dev reloader; only the reloaded child (RUN_MAIN=true) schedules")
	if err := parseFlags(schedulers.CommandServe, flags, args, c.errOut); err != nil {
		return err
	}

	cfg, err := configs.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(cfg, c.output)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	eligibility := schedulers.DetectEligibility(cfg.Scheduler.Enabled, schedulers.CommandServe, *devReload, c.getenv)
	return application.Serve(ctx, eligibility)
}

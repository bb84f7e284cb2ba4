package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"access-summary/internal/aggregators"
	internalhttp "access-summary/internal/http"
	"access-summary/internal/logsources"
	"access-summary/internal/schedulers"
	"access-summary/internal/shared/configs"
	"access-summary/internal/shared/loggers"
	"access-summary/internal/summaries"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger

	summaryService summaries.SummaryService
	scheduler      schedulers.Scheduler
	server         *http.Server
}

// New creates and initializes a new App instance. Logs are written to logOutput.
func New(config *configs.Config, logOutput io.Writer) (*App, error) {
	appLogger, err := loggers.NewWithWriter(config.Log.Level, logOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "access-summary").
		Logger()

	// Initialize summary service
	summaryService := summaries.NewSummaryService(
		summaries.Options{
			LogDir:     config.AccessLog.Dir,
			SummaryDir: config.Summary.Dir,
			TopN:       config.Summary.TopN,
			SlowN:      config.Summary.SlowN,
			Location:   config.Summary.Location(),
			Thresholds: aggregators.AnomalyThresholds{
				ErrorRatePct:   config.Anomaly.ErrorRatePct,
				P95Seconds:     config.Anomaly.P95Seconds,
				OriginCount:    int64(config.Anomaly.OriginCount),
				OriginSharePct: config.Anomaly.OriginSharePct,
			},
		},
		logsources.NewCollector(config.AccessLog.Patterns),
		summaries.NewFileStoreFactory(),
		appLogger.With().Str(loggers.FieldComponent, "summaries").Logger(),
	)

	// Initialize scheduler
	schedulerLogger := appLogger.With().Str(loggers.FieldComponent, "scheduler").Logger()
	scheduler := schedulers.NewScheduler(
		schedulers.Options{
			PollInterval:  config.Scheduler.PollInterval,
			TriggerOffset: config.Scheduler.TriggerOffset(),
			Location:      config.Summary.Location(),
		},
		schedulers.NewFileLock(config.Scheduler.LockFile),
		summaryService,
		schedulerLogger,
	)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(summaryService, scheduler, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:         config,
		appLogger:      appLogger,
		summaryService: summaryService,
		scheduler:      scheduler,
		server:         server,
	}, nil
}

// Logger returns the application logger.
func (app *App) Logger() loggers.Logger {
	return app.appLogger
}

// SummaryService returns the on-demand summary entry point.
func (app *App) SummaryService() summaries.SummaryService {
	return app.summaryService
}

// Serve runs the admin HTTP server and, when this process wins the scheduler lock,
// the daily scheduler. It blocks until ctx is canceled.
func (app *App) Serve(ctx context.Context, eligibility schedulers.Eligibility) error {
	app.appLogger.Info().
		Msgf("Starting access-summary service on port %d (log_level=%s, access_log_dir=%s, timezone=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.AccessLog.Dir,
			app.config.Summary.Location())

	supervisor := newSupervisor(app.appLogger.With().Str(loggers.FieldComponent, "supervisor").Logger())
	supervisor.Add(NewHTTPServerService(app.server, shutdownTimeout))

	acquired, err := app.scheduler.Acquire(eligibility)
	if err != nil {
		app.appLogger.Warn().Err(err).Msg("continuing without scheduler")
	}
	if acquired {
		supervisor.Add(app.scheduler)
		defer func() {
			if err := app.scheduler.Release(); err != nil {
				app.appLogger.Warn().Err(err).Msg("failed to release scheduler lock")
			}
		}()
	}

	err = supervisor.Serve(ctx)
	app.appLogger.Info().Msg("Server stopped")
	if ctx.Err() != nil {
		return nil
	}
	return err
}

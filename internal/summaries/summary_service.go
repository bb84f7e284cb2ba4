package summaries

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"access-summary/internal/aggregators"
	"access-summary/internal/logsources"
	"access-summary/internal/models"
	"access-summary/internal/parsers"
	"access-summary/internal/shared/configs"
	"access-summary/internal/shared/filestorages"
	"access-summary/internal/shared/loggers"
	"access-summary/internal/shared/metrics"
	"access-summary/internal/shared/svcerrors"
	"access-summary/internal/stores"
)

// GenerateRequest selects the day to summarize. Zero-valued overrides fall back to the
// service options; sizes are clamped to their allowed ranges.
type GenerateRequest struct {
	Date       string // YYYY-MM-DD in the summary location
	LogDir     string
	SummaryDir string
	TopN       int
	SlowN      int
}

// GenerateResult is the published summary and where it was written.
type GenerateResult struct {
	Summary      *models.DailySummary
	JSONPath     string
	MarkdownPath string
}

// Options are the configured defaults of the service.
type Options struct {
	LogDir     string
	SummaryDir string
	TopN       int
	SlowN      int
	Location   *time.Location
	Thresholds aggregators.AnomalyThresholds
}

// StoreFactory opens the summary store rooted at dir.
type StoreFactory func(dir string) (stores.SummaryStore, error)

// NewFileStoreFactory returns a StoreFactory backed by the local filesystem.
func NewFileStoreFactory() StoreFactory {
	return func(dir string) (stores.SummaryStore, error) {
		fileStorage, err := filestorages.NewFileStorage(dir)
		if err != nil {
			return nil, err
		}
		return stores.NewSummaryStore(fileStorage), nil
	}
}

//go:generate mockgen -source=summary_service.go -destination=./mocks/summary_service_mock.go -package=mocks
type SummaryService interface {
	// Generate scans the log directory for one day and publishes the report pair,
	// replacing any previous report for that day.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	// Load reads a previously published summary. An empty summaryDir uses the configured one.
	Load(ctx context.Context, date string, summaryDir string) (*models.DailySummary, error)
	// Exists reports whether the JSON report of date is present.
	Exists(ctx context.Context, date string, summaryDir string) (bool, error)
}

type summaryService struct {
	options      Options
	collector    logsources.Collector
	storeFactory StoreFactory
	detector     aggregators.AnomalyDetector
	now          func() time.Time

	// logger is used when the caller's context carries none.
	logger loggers.Logger
}

func NewSummaryService(options Options, collector logsources.Collector, storeFactory StoreFactory, logger loggers.Logger) SummaryService {
	if options.Location == nil {
		options.Location = time.Local
	}
	if strings.TrimSpace(options.SummaryDir) == "" {
		options.SummaryDir = configs.DefaultSummaryDir(options.LogDir)
	}
	return &summaryService{
		options:      options,
		collector:    collector,
		storeFactory: storeFactory,
		detector:     aggregators.NewAnomalyDetector(options.Thresholds),
		now:          time.Now,
		logger:       logger,
	}
}

func (s *summaryService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	started := s.now()
	ctx = loggers.WithFallback(ctx, s.logger)
	result, err := s.generate(ctx, req)

	code := metrics.ValueNoError
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		code = svcErr.Code
	}
	metricSummaryGeneratedTotal.WithLabelValues(code).Inc()
	metricSummaryGenerationSeconds.Observe(time.Since(started).Seconds())
	return result, err
}

func (s *summaryService) generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	logger := loggers.Ctx(ctx)

	date, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	logDir := s.options.LogDir
	if dir := strings.TrimSpace(req.LogDir); dir != "" {
		logDir = dir
	}
	summaryDir := s.resolveSummaryDir(req.SummaryDir)
	topN := configs.ClampTopN(withFallback(req.TopN, s.options.TopN))
	slowN := configs.ClampSlowN(withFallback(req.SlowN, s.options.SlowN))

	logger.Debug().
		Str(loggers.FieldSummaryDate, date.Format(aggregators.DateLayout)).
		Str("log_dir", logDir).
		Str("summary_dir", summaryDir).
		Int("top_n", topN).
		Int("slow_n", slowN).
		Msg("started generating daily summary")

	store, err := s.storeFactory(summaryDir)
	if err != nil {
		return nil, errInvalidArgument("invalid summary directory", err)
	}

	files := s.collector.Collect(ctx, logDir)
	aggregator := aggregators.NewDailyAggregator(date, s.options.Location, topN, slowN, parsers.NewRecordParser(s.options.Location), s.detector)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, errInternalGenerationAborted(err)
		}
		s.scanFile(ctx, aggregator, path)
	}

	summary := aggregator.Finalize(aggregators.Provenance{
		LogDir:       logDir,
		ScannedFiles: len(files),
		GeneratedAt:  s.now(),
	})

	written, err := store.Put(ctx, summary)
	if err != nil {
		return nil, errInternalSummaryStoreFailed(err)
	}

	logger.Info().
		Str(loggers.FieldSummaryDate, summary.Date).
		Int64("total_requests", summary.TotalRequests).
		Int64("parse_errors", summary.ParseErrors).
		Int("scanned_files", summary.ScannedFiles).
		Str("json_path", written.JSONPath).
		Str("markdown_path", written.MarkdownPath).
		Msg("generated daily access summary")

	return &GenerateResult{Summary: summary, JSONPath: written.JSONPath, MarkdownPath: written.MarkdownPath}, nil
}

// scanFile feeds every readable line of path to the aggregator. An unreadable file, or
// the unreadable rest of one, is skipped; lines already consumed stay counted.
func (s *summaryService) scanFile(ctx context.Context, aggregator aggregators.DailyAggregator, path string) {
	logger := loggers.Ctx(ctx)

	logFile, err := logsources.Open(path)
	if err != nil {
		logger.Warn().Err(err).Str(loggers.FieldLogFile, path).Msg("skipping unreadable log file")
		return
	}
	defer logFile.Close()

	for {
		line, err := logFile.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Warn().Err(err).Str(loggers.FieldLogFile, logFile.Path()).Msg("abandoning log file after read error")
			}
			return
		}
		aggregator.ObserveLine(line)
	}
}

func (s *summaryService) Load(ctx context.Context, date string, summaryDir string) (*models.DailySummary, error) {
	parsed, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	date = parsed.Format(aggregators.DateLayout)
	store, err := s.storeFactory(s.resolveSummaryDir(summaryDir))
	if err != nil {
		return nil, errInvalidArgument("invalid summary directory", err)
	}

	summary, err := store.Get(ctx, date)
	if err != nil {
		if errors.Is(err, stores.ErrSummaryNotFound) {
			return nil, errSummaryNotFound(date, err)
		}
		return nil, errInternalSummaryStoreFailed(err)
	}
	return summary, nil
}

func (s *summaryService) Exists(ctx context.Context, date string, summaryDir string) (bool, error) {
	parsed, err := s.parseDate(date)
	if err != nil {
		return false, err
	}
	date = parsed.Format(aggregators.DateLayout)
	store, err := s.storeFactory(s.resolveSummaryDir(summaryDir))
	if err != nil {
		return false, errInvalidArgument("invalid summary directory", err)
	}

	exists, err := store.Exists(ctx, date)
	if err != nil {
		return false, errInternalSummaryStoreFailed(err)
	}
	return exists, nil
}

func (s *summaryService) parseDate(date string) (time.Time, error) {
	parsed, err := time.ParseInLocation(aggregators.DateLayout, strings.TrimSpace(date), s.options.Location)
	if err != nil {
		return time.Time{}, errInvalidArgument("date must be formatted as YYYY-MM-DD", err)
	}
	return parsed, nil
}

func (s *summaryService) resolveSummaryDir(override string) string {
	if dir := strings.TrimSpace(override); dir != "" {
		return dir
	}
	return s.options.SummaryDir
}

func withFallback(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"access-summary/internal/aggregators"
	"access-summary/internal/app"
	"access-summary/internal/models"
	"access-summary/internal/shared/configs"
	"access-summary/internal/summaries"
)

// summarizeCommand writes its result to output and its logs to errOut.
type summarizeCommand struct {
	output io.Writer
	errOut io.Writer
	now    func() time.Time
}

func newSummarizeCommand(output, errOut io.Writer) *summarizeCommand {
	return &summarizeCommand{output: output, errOut: errOut, now: time.Now}
}

func (c *summarizeCommand) Description() string {
	return "Summarize one day of access logs into JSON and Markdown reports"
}

func (c *summarizeCommand) Execute(ctx context.Context, args []string) error {
	flags := newFlagSet("summarize", c.errOut)
	configPath := flags.String("config", defaultConfigPath, "configuration file")
	date := flags.String("date", "", "target date YYYY-MM-DD (default today in summary.timezone)")
	topN := flags.Int("top-n", 0, fmt.Sprintf("rows per ranking, %d-%d (default summary.top_n)", configs.MinTopN, configs.MaxTopN))
	slowN := flags.Int("slow-n", 0, fmt.Sprintf("slow requests kept, %d-%d (default summary.slow_n)", configs.MinSlowN, configs.MaxSlowN))
	logDir := flags.String("log-dir", "", "override access_log.dir")
	summaryDir := flags.String("summary-dir", "", "override summary.dir")
	if err := parseFlags("summarize", flags, args, c.errOut); err != nil {
		return err
	}

	cfg, err := configs.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(cfg, c.errOut)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	// an explicit size is clamped; an absent one falls back to the configuration
	if flags.Changed("top-n") {
		*topN = configs.ClampTopN(*topN)
	}
	if flags.Changed("slow-n") {
		*slowN = configs.ClampSlowN(*slowN)
	}

	targetDate := *date
	if targetDate == "" {
		targetDate = c.now().In(cfg.Summary.Location()).Format(aggregators.DateLayout)
	}

	ctx = application.Logger().WithContext(ctx)
	result, err := application.SummaryService().Generate(ctx, summaries.GenerateRequest{
		Date:       targetDate,
		LogDir:     *logDir,
		SummaryDir: *summaryDir,
		TopN:       *topN,
		SlowN:      *slowN,
	})
	if err != nil {
		return err
	}

	summary := result.Summary
	fmt.Fprintf(c.output, "Access summary generated for %s: %s / %s\n", summary.Date, result.JSONPath, result.MarkdownPath)
	fmt.Fprintf(c.output, "requests=%d, unique_ips=%d, error_rate=%s%%\n", summary.TotalRequests, summary.UniqueIPs, models.FormatDecimal(summary.ErrorRatePct))
	return nil
}

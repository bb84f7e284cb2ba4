package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"access-summary/internal/models"
	"access-summary/internal/reports"
	"access-summary/internal/shared/filestorages"

	"github.com/goccy/go-json"
)

const (
	summaryKeyPrefix = "access_summary_"
	jsonExt          = ".json"
	markdownExt      = ".md"
)

var ErrSummaryNotFound = errors.New("summary not found")

// SummaryFiles are the locations of a published report pair.
type SummaryFiles struct {
	JSONPath     string
	MarkdownPath string
}

//go:generate mockgen -source=summary_store.go -destination=./mocks/summary_store_mock.go -package=mocks
type SummaryStore interface {
	// Put publishes access_summary_<date>.md and then access_summary_<date>.json, each
	// atomically. A visible JSON file therefore always has its markdown sibling.
	Put(ctx context.Context, summary *models.DailySummary) (*SummaryFiles, error)
	Get(ctx context.Context, date string) (*models.DailySummary, error)
	Exists(ctx context.Context, date string) (bool, error)
}

type summaryStore struct {
	fileStorage filestorages.FileStorage
}

func NewSummaryStore(fileStorage filestorages.FileStorage) SummaryStore {
	return &summaryStore{fileStorage: fileStorage}
}

func (s *summaryStore) Put(ctx context.Context, summary *models.DailySummary) (*SummaryFiles, error) {
	jsonData, err := EncodeSummary(summary)
	if err != nil {
		return nil, err
	}

	markdown, err := s.fileStorage.Put(ctx, markdownKey(summary.Date), strings.NewReader(reports.RenderMarkdown(summary)))
	if err != nil {
		return nil, fmt.Errorf("failed to put summary markdown: %w", err)
	}
	structured, err := s.fileStorage.Put(ctx, jsonKey(summary.Date), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to put summary json: %w", err)
	}

	return &SummaryFiles{JSONPath: structured.Location, MarkdownPath: markdown.Location}, nil
}

func (s *summaryStore) Get(ctx context.Context, date string) (*models.DailySummary, error) {
	readCloser, err := s.fileStorage.Get(ctx, jsonKey(date))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	var summary models.DailySummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &summary, nil
}

func (s *summaryStore) Exists(ctx context.Context, date string) (bool, error) {
	exists, err := s.fileStorage.Exists(ctx, jsonKey(date))
	if err != nil {
		return false, fmt.Errorf("failed to check summary: %w", err)
	}
	return exists, nil
}

// EncodeSummary returns the on-disk JSON form: two-space indent, UTF-8 without HTML
// escaping, trailing newline.
func EncodeSummary(summary *models.DailySummary) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}
	return buf.Bytes(), nil
}

func jsonKey(date string) string {
	return summaryKeyPrefix + date + jsonExt
}

func markdownKey(date string) string {
	return summaryKeyPrefix + date + markdownExt
}

package logsources

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"access-summary/internal/shared/loggers"
)

// DefaultPatterns matches the current log, rotated plain logs and rotated gzip logs.
var DefaultPatterns = []string{"access_json.log", "access_json_*.log", "access_json_*.log.gz"}

//go:generate mockgen -source=collector.go -destination=./mocks/collector_mock.go -package=mocks
type Collector interface {
	// Collect returns the files of dir matching any pattern, oldest first.
	// A missing or unreadable dir yields an empty list.
	Collect(ctx context.Context, dir string) []string
}

type collector struct {
	patterns []string
}

func NewCollector(patterns []string) Collector {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &collector{patterns: patterns}
}

func (c *collector) Collect(ctx context.Context, dir string) []string {
	logger := loggers.Ctx(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn().Err(err).Str(loggers.FieldLogFile, dir).Msg("log directory is not readable, no files collected")
		return []string{}
	}

	type candidate struct {
		path  string
		mtime int64
	}
	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !c.matches(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		var mtime int64
		if info, err := os.Stat(path); err == nil {
			mtime = info.ModTime().UnixNano()
		}
		candidates = append(candidates, candidate{path: path, mtime: mtime})
	}

	// Oldest first so records arrive in roughly chronological order
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].mtime != candidates[j].mtime {
			return candidates[i].mtime < candidates[j].mtime
		}
		return candidates[i].path < candidates[j].path
	})

	paths := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		paths = append(paths, cand.path)
	}
	logger.Debug().Int("file_count", len(paths)).Str(loggers.FieldLogFile, dir).Msg("collected log files")
	return paths
}

func (c *collector) matches(name string) bool {
	for _, pattern := range c.patterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

package summaries

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"access-summary/internal/aggregators"
	"access-summary/internal/logsources"
	logsourcemocks "access-summary/internal/logsources/mocks"
	"access-summary/internal/models"
	"access-summary/internal/shared/loggers"
	"access-summary/internal/shared/svcerrors"
	"access-summary/internal/stores"
	storemocks "access-summary/internal/stores/mocks"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 12, 29, 0, 5, 0, 0, time.UTC)

const threeRecords = `{"logged_at":"2025-12-28T09:00:00Z","status":200,"method":"GET","path":"/","client_ip":"A","user_agent":"Mozilla/5.0 (Windows NT 10.0) Chrome/120.0","request_time_s":0.1}
{"logged_at":"2025-12-28T09:10:00Z","status":200,"method":"GET","path":"/","client_ip":"A","user_agent":"Mozilla/5.0 (Windows NT 10.0) Chrome/120.0","request_time_s":0.2}
{"logged_at":"2025-12-28T21:00:00Z","status":500,"method":"POST","path":"/api","client_ip":"B","user_agent":"curl/8.4.0","request_time_s":0.3}
`

func newTestService(t *testing.T, logDir, summaryDir string) SummaryService {
	t.Helper()
	svc := NewSummaryService(Options{
		LogDir:     logDir,
		SummaryDir: summaryDir,
		TopN:       10,
		SlowN:      20,
		Location:   time.UTC,
		Thresholds: aggregators.DefaultAnomalyThresholds(),
	}, logsources.NewCollector(nil), NewFileStoreFactory(), loggers.Nop())
	svc.(*summaryService).now = func() time.Time { return fixedNow }
	return svc
}

func writeLog(t *testing.T, dir, name, content string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	data := []byte(content)
	if strings.HasSuffix(name, ".gz") {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		data = buf.Bytes()
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func requireServiceError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError, got %v", err)
	assert.Equal(t, code, svcErr.Code)
}

func TestGenerate_ThreeRecordScenario(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	writeLog(t, logDir, "access_json.log", threeRecords, fixedNow)
	svc := newTestService(t, logDir, "")

	result, err := svc.Generate(context.Background(), GenerateRequest{Date: "2025-12-28"})
	require.NoError(t, err)

	summary := result.Summary
	assert.Equal(t, int64(3), summary.TotalRequests)
	assert.Equal(t, int64(1), summary.ErrorRequests)
	assert.Equal(t, 33.33, summary.ErrorRatePct)
	assert.Equal(t, 2, summary.UniqueIPs)
	assert.Equal(t, 1, summary.ScannedFiles)
	assert.Equal(t, logDir, summary.LogDir)
	assert.Contains(t, summary.Anomalies, "high error rate (4xx/5xx: 33.33%)")

	summaryDir := filepath.Join(logDir, "summaries")
	assert.Equal(t, filepath.Join(summaryDir, "access_summary_2025-12-28.json"), result.JSONPath)
	assert.Equal(t, filepath.Join(summaryDir, "access_summary_2025-12-28.md"), result.MarkdownPath)
	assert.FileExists(t, result.JSONPath)
	assert.FileExists(t, result.MarkdownPath)

	exists, err := svc.Exists(context.Background(), "2025-12-28", "")
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := svc.Load(context.Background(), "2025-12-28", "")
	require.NoError(t, err)
	assert.Equal(t, summary, loaded)
}

func TestGenerate_IsIdempotent(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	summaryDir := t.TempDir()
	writeLog(t, logDir, "access_json.log", threeRecords, fixedNow)
	svc := newTestService(t, logDir, summaryDir)

	first, err := svc.Generate(context.Background(), GenerateRequest{Date: "2025-12-28"})
	require.NoError(t, err)
	firstJSON, err := os.ReadFile(first.JSONPath)
	require.NoError(t, err)

	second, err := svc.Generate(context.Background(), GenerateRequest{Date: "2025-12-28"})
	require.NoError(t, err)
	secondJSON, err := os.ReadFile(second.JSONPath)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
}

func TestGenerate_MixedSourcesAndLineAccounting(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	writeLog(t, logDir, "access_json_20251227.log.gz",
		`{"logged_at":"2025-12-27T23:59:59Z","status":200}`+"\n"+
			`{"logged_at":"2025-12-28T00:00:01Z","status":404,"path":"/old"}`+"\n",
		fixedNow.Add(-2*time.Hour))
	writeLog(t, logDir, "access_json_20251228.log",
		"garbage\n\n"+`{"status":200}`+"\n"+`{"logged_at":"2025-12-28T12:00:00Z","status":"201"}`+"\n",
		fixedNow.Add(-1*time.Hour))
	writeLog(t, logDir, "access_json.log",
		`{"logged_at":"2025-12-28T23:00:00Z","status":200,"request_time_s":"1.25"}`+"\n"+`[]`,
		fixedNow)
	writeLog(t, logDir, "unrelated.log", `{"logged_at":"2025-12-28T12:00:00Z"}`, fixedNow)

	svc := newTestService(t, logDir, t.TempDir())
	result, err := svc.Generate(context.Background(), GenerateRequest{Date: "2025-12-28"})
	require.NoError(t, err)

	summary := result.Summary
	assert.Equal(t, 3, summary.ScannedFiles)
	assert.Equal(t, int64(8), summary.LinesRead)
	assert.Equal(t, int64(2), summary.ParseErrors)
	assert.Equal(t, int64(3), summary.TotalRequests)
	assert.LessOrEqual(t, summary.ParseErrors+summary.TotalRequests, summary.LinesRead)
	assert.Equal(t, []models.PathCount{{Path: "/old", Count: 1}}, summary.ErrorPaths)
	assert.Equal(t, 1, summary.RequestTime.Count)
	assert.Equal(t, 1.25, *summary.RequestTime.Max)
}

func TestGenerate_CorruptFileIsSkipped(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	corrupt := filepath.Join(logDir, "access_json_1.log.gz")
	require.NoError(t, os.WriteFile(corrupt, []byte("not gzip at all"), 0o644))
	require.NoError(t, os.Chtimes(corrupt, fixedNow.Add(-3*time.Hour), fixedNow.Add(-3*time.Hour)))
	writeLog(t, logDir, "access_json_2.log.gz",
		`{"logged_at":"2025-12-28T08:00:00Z","status":200,"client_ip":"A"}`+"\n",
		fixedNow.Add(-2*time.Hour))
	writeLog(t, logDir, "access_json.log",
		`{"logged_at":"2025-12-28T09:00:00Z","status":200,"client_ip":"A"}`+"\n"+
			`{"logged_at":"2025-12-28T10:00:00Z","status":503,"client_ip":"B"}`+"\n",
		fixedNow)

	var logs bytes.Buffer
	logger, err := loggers.NewWithWriter("info", &logs)
	require.NoError(t, err)
	svc := NewSummaryService(Options{LogDir: logDir, SummaryDir: t.TempDir(), TopN: 10, SlowN: 20, Location: time.UTC},
		logsources.NewCollector(nil), NewFileStoreFactory(), logger)

	// no logger on the context: the service logger reports the skipped file
	result, err := svc.Generate(context.Background(), GenerateRequest{Date: "2025-12-28"})
	require.NoError(t, err)

	summary := result.Summary
	assert.Equal(t, 3, summary.ScannedFiles)
	assert.Equal(t, int64(3), summary.TotalRequests)
	assert.Equal(t, int64(1), summary.ErrorRequests)
	assert.Equal(t, int64(0), summary.ParseErrors)
	assert.Contains(t, logs.String(), "skipping unreadable log file")
	assert.Contains(t, logs.String(), "access_json_1.log.gz")
	assert.Contains(t, logs.String(), "generated daily access summary")
}

func TestLoadAndExists_TrimDate(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	writeLog(t, logDir, "access_json.log", threeRecords, fixedNow)
	svc := newTestService(t, logDir, "")

	_, err := svc.Generate(context.Background(), GenerateRequest{Date: "2025-12-28"})
	require.NoError(t, err)

	exists, err := svc.Exists(context.Background(), " 2025-12-28\n", "")
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := svc.Load(context.Background(), "  2025-12-28 ", "")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-28", loaded.Date)
}

func TestGenerate_OverridesAndSizes(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	overrideSummaryDir := filepath.Join(t.TempDir(), "nested", "out")
	writeLog(t, logDir, "access_json.log", threeRecords, fixedNow)
	svc := newTestService(t, "/nonexistent", "/nonexistent/summaries")

	result, err := svc.Generate(context.Background(), GenerateRequest{
		Date:       "2025-12-28",
		LogDir:     logDir,
		SummaryDir: overrideSummaryDir,
		TopN:       1,
		SlowN:      -5,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(overrideSummaryDir, "access_summary_2025-12-28.json"), result.JSONPath)
	assert.Len(t, result.Summary.TopPaths, 1)
	assert.Len(t, result.Summary.IPRankings, 1)
	require.Len(t, result.Summary.SlowRequests, 1, "slow_n is clamped to at least one")
	assert.Equal(t, 0.3, result.Summary.SlowRequests[0].RequestTimeS)
}

func TestGenerate_MissingLogDirectoryProducesEmptyReport(t *testing.T) {
	t.Parallel()

	summaryDir := t.TempDir()
	svc := newTestService(t, filepath.Join(t.TempDir(), "missing"), summaryDir)

	result, err := svc.Generate(context.Background(), GenerateRequest{Date: "2025-12-28"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Summary.ScannedFiles)
	assert.Equal(t, []string{"no requests recorded"}, result.Summary.Anomalies)
}

func TestGenerate_InvalidDate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, t.TempDir(), t.TempDir())

	for _, date := range []string{"", "2025-13-01", "28-12-2025", "2025-12-28T00:00:00Z", "yesterday"} {
		result, err := svc.Generate(context.Background(), GenerateRequest{Date: date})
		assert.Nil(t, result)
		requireServiceError(t, err, "SUM_1000")
	}
}

func TestGenerate_StoreFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	collector := logsourcemocks.NewMockCollector(ctrl)
	store := storemocks.NewMockSummaryStore(ctrl)
	svc := NewSummaryService(Options{LogDir: "/logs", TopN: 10, SlowN: 20, Location: time.UTC}, collector,
		func(dir string) (stores.SummaryStore, error) {
			assert.Equal(t, filepath.Join("/logs", "summaries"), dir)
			return store, nil
		}, loggers.Nop())

	collector.EXPECT().Collect(gomock.Any(), "/logs").Return([]string{})
	store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil, errors.New("read-only file system"))

	result, err := svc.Generate(context.Background(), GenerateRequest{Date: "2025-12-28"})
	assert.Nil(t, result)
	requireServiceError(t, err, "SUM_9000")
}

func TestGenerate_CanceledContext(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	collector := logsourcemocks.NewMockCollector(ctrl)
	store := storemocks.NewMockSummaryStore(ctrl)
	svc := NewSummaryService(Options{LogDir: "/logs", Location: time.UTC}, collector,
		func(string) (stores.SummaryStore, error) { return store, nil }, loggers.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	collector.EXPECT().Collect(gomock.Any(), "/logs").Return([]string{"/logs/access_json.log"})

	result, err := svc.Generate(ctx, GenerateRequest{Date: "2025-12-28"})
	assert.Nil(t, result)
	requireServiceError(t, err, "SUM_9001")
}

func TestLoad_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, t.TempDir(), t.TempDir())

	summary, err := svc.Load(context.Background(), "2025-12-28", "")
	assert.Nil(t, summary)
	requireServiceError(t, err, "SUM_1001")

	exists, err := svc.Exists(context.Background(), "2025-12-28", "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoad_StoreFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storemocks.NewMockSummaryStore(ctrl)
	svc := NewSummaryService(Options{LogDir: "/logs", Location: time.UTC}, logsources.NewCollector(nil),
		func(dir string) (stores.SummaryStore, error) {
			assert.Equal(t, "/custom", dir)
			return store, nil
		}, loggers.Nop())

	store.EXPECT().Get(gomock.Any(), "2025-12-28").Return(nil, errors.New("permission denied"))

	summary, err := svc.Load(context.Background(), "2025-12-28", "/custom")
	assert.Nil(t, summary)
	requireServiceError(t, err, "SUM_9000")
}

func TestExists_InvalidDate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, t.TempDir(), t.TempDir())

	exists, err := svc.Exists(context.Background(), "../../etc/passwd", "")
	assert.False(t, exists)
	requireServiceError(t, err, "SUM_1000")
}

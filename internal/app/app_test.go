package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"access-summary/internal/schedulers"
	"access-summary/internal/shared/configs"
	"access-summary/internal/summaries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *configs.Config {
	t.Helper()
	t.Setenv("ACCESS_SUMMARY_ACCESS_LOG_DIR", t.TempDir())
	t.Setenv("ACCESS_SUMMARY_SCHEDULER_LOCK_FILE", filepath.Join(t.TempDir(), "scheduler.lock"))
	t.Setenv("ACCESS_SUMMARY_SUMMARY_TIMEZONE", "UTC")
	t.Setenv("ACCESS_SUMMARY_SERVER_PORT", "18089")
	cfg, err := configs.LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	return cfg
}

func TestNew_WiresSummaryService(t *testing.T) {
	cfg := testConfig(t)
	logDir := cfg.AccessLog.Dir
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "access_json.log"), []byte(
		`{"logged_at":"2025-12-28T09:00:00Z","status":200,"method":"GET","path":"/","client_ip":"A","request_time_s":0.1}`+"\n",
	), 0644))

	var logs bytes.Buffer
	application, err := New(cfg, &logs)
	require.NoError(t, err)

	result, err := application.SummaryService().Generate(context.Background(), summaries.GenerateRequest{Date: "2025-12-28"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Summary.TotalRequests)
	assert.Equal(t, filepath.Join(logDir, "summaries", "access_summary_2025-12-28.json"), result.JSONPath)
	assert.FileExists(t, result.MarkdownPath)
	assert.Contains(t, logs.String(), "generated daily access summary")
}

func TestNew_InvalidLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Level = "loud"

	_, err := New(cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestServe_StopsWithContextAndReleasesLock(t *testing.T) {
	cfg := testConfig(t)

	var logs bytes.Buffer
	application, err := New(cfg, &logs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- application.Serve(ctx, schedulers.Eligibility{Enabled: true, Command: schedulers.CommandServe})
	}()

	require.Eventually(t, func() bool {
		return application.scheduler.Phase() == schedulers.PhaseRunning
	}, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("app did not stop")
	}

	// the lock is free again
	lock := schedulers.NewFileLock(cfg.Scheduler.LockFile)
	require.NoError(t, lock.TryAcquire())
	assert.NoError(t, lock.Release())
}

package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalEntries     = 6400 // entries logged on the target day, spread over three files
	previousDayLines = 100  // entries of the day before, must be ignored
	malformedLines   = 10   // lines that are not JSON objects, reported as parse errors
	clientCount      = 64
)

var (
	paths      = []string{"/", "/about", "/careers", "/contact"}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"curl/7.88.1",
	}
)

// ### End - fixed configs

type logEntry struct {
	LoggedAt     string  `json:"logged_at"`
	Status       int     `json:"status"`
	Method       string  `json:"method"`
	Path         string  `json:"path"`
	Host         string  `json:"host"`
	ClientIP     string  `json:"client_ip"`
	UserAgent    string  `json:"user_agent"`
	RequestTimeS float64 `json:"request_time_s"`
}

type summaryResponse struct {
	Date          string   `json:"date"`
	TotalRequests int64    `json:"total_requests"`
	UniqueIPs     int      `json:"unique_ips"`
	ErrorRequests int64    `json:"error_requests"`
	ErrorRatePct  float64  `json:"error_rate_pct"`
	ParseErrors   int64    `json:"parse_errors"`
	ScannedFiles  int      `json:"scanned_files"`
	Anomalies     []string `json:"anomalies"`
}

// main runs the e2e scenario: 001_daily_summary
//
// This scenario writes a deterministic set of access log files (current, rotated and
// gzip-rotated), asks a running access-summary server to summarize the day several
// times concurrently, and checks the published report.
//
// Start the server with its log directory pointing at the generated files:
//
//	ACCESS_SUMMARY_ACCESS_LOG_DIR=$PWD/.tmp/access-logs ACCESS_SUMMARY_SUMMARY_TIMEZONE=UTC \
//	  accesssummary serve
//
// What it tests:
//   - Log file discovery across plain and .gz files
//   - Day filtering (entries of the previous day are ignored)
//   - Parse error accounting for malformed lines
//   - Concurrent regeneration of the same day (last writer wins, files stay whole)
//   - Reading the stored JSON and markdown back over HTTP
//
// Expected results:
//   - total_requests = 6400, unique_ips = 64, parse_errors = 10, scanned_files = 3
//   - error_requests = 1280 (every 5th request is a 404 or 500), error_rate_pct = 20.0
//   - the error-rate anomaly is reported
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the access-summary admin API
	date := "2025-12-28"               // Day to generate and summarize (UTC timestamps)
	parallel := 4                      // Number of concurrent POST /summaries/{date} requests
	logDir := ".tmp/access-logs"       // Log directory path relative to project root

	projectRoot, err := findProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	logPath := filepath.Join(projectRoot, logDir)

	fmt.Println("Starting e2e scenario: 001_daily_summary")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("DATE: %s\n", date)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("LOG_PATH: %s\n", logPath)
	fmt.Println()

	if err := os.RemoveAll(logPath); err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: Failed to clean log directory: %v\n", err)
	}
	if err := writeLogFiles(logPath, date); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write log files: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d entries, %d previous-day entries and %d malformed lines\n", totalEntries, previousDayLines, malformedLines)

	var wg sync.WaitGroup
	var succeeded int64
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := post(baseURL + "/summaries/" + date)
			if err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: generate request failed: %v\n", err)
				return
			}
			if status == http.StatusOK {
				atomic.AddInt64(&succeeded, 1)
			}
			fmt.Printf("Generate request completed (status %d)\n", status)
		}()
	}
	wg.Wait()

	if atomic.LoadInt64(&succeeded) != int64(parallel) {
		fmt.Fprintf(os.Stderr, "ERROR: %d of %d generate requests failed\n", int64(parallel)-succeeded, parallel)
		os.Exit(1)
	}

	var summary summaryResponse
	if err := getJSON(baseURL+"/summaries/"+date, &summary); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read summary: %v\n", err)
		os.Exit(1)
	}

	failures := verify(summary, date)
	markdown, err := getText(baseURL + "/summaries/" + date + "/markdown")
	if err != nil {
		failures = append(failures, fmt.Sprintf("markdown: %v", err))
	} else if !bytes.HasPrefix(markdown, []byte("# Access Log Daily Summary ("+date+")")) {
		failures = append(failures, "markdown: unexpected heading")
	}

	fmt.Println()
	fmt.Println("=== Summary ===")
	fmt.Printf("Total requests: %d\n", summary.TotalRequests)
	fmt.Printf("Unique IPs: %d\n", summary.UniqueIPs)
	fmt.Printf("Error requests: %d (%.1f%%)\n", summary.ErrorRequests, summary.ErrorRatePct)
	fmt.Printf("Parse errors: %d\n", summary.ParseErrors)
	fmt.Printf("Scanned files: %d\n", summary.ScannedFiles)
	fmt.Printf("Anomalies: %v\n", summary.Anomalies)

	if len(failures) > 0 {
		for _, failure := range failures {
			fmt.Fprintf(os.Stderr, "FAIL: %s\n", failure)
		}
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod, run from inside the project")
		}
		dir = parent
	}
}

func entryAt(i int, day string) logEntry {
	status := http.StatusOK
	switch i % 10 {
	case 0:
		status = http.StatusInternalServerError
	case 5:
		status = http.StatusNotFound
	}
	second := i % 86400
	loggedAt := fmt.Sprintf("%sT%02d:%02d:%02dZ", day, second/3600, second/60%60, second%60)
	return logEntry{
		LoggedAt:     loggedAt,
		Status:       status,
		Method:       "GET",
		Path:         paths[i%len(paths)],
		Host:         "example.com",
		ClientIP:     fmt.Sprintf("10.0.0.%d", i%clientCount),
		UserAgent:    userAgents[(i/len(paths))%len(userAgents)],
		RequestTimeS: float64(i%50) / 100,
	}
}

// writeLogFiles splits the day over a gzip-rotated file, a rotated file and the
// current file.
func writeLogFiles(dir, date string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	previousDay := day.AddDate(0, 0, -1).Format("2006-01-02")

	third := totalEntries / 3
	files := []struct {
		name     string
		from, to int
	}{
		{name: "access_json_20251227.log.gz", from: 0, to: third},
		{name: "access_json_20251228.log", from: third, to: 2 * third},
		{name: "access_json.log", from: 2 * third, to: totalEntries},
	}

	for index, file := range files {
		var buf bytes.Buffer
		writer := bufio.NewWriter(&buf)
		encoder := json.NewEncoder(writer)
		if index == 0 {
			for i := 0; i < previousDayLines; i++ {
				if err := encoder.Encode(entryAt(i, previousDay)); err != nil {
					return err
				}
			}
		}
		for i := file.from; i < file.to; i++ {
			if err := encoder.Encode(entryAt(i, date)); err != nil {
				return err
			}
		}
		if index == len(files)-1 {
			for i := 0; i < malformedLines; i++ {
				fmt.Fprintf(writer, "malformed line %d\n", i)
			}
		}
		if err := writer.Flush(); err != nil {
			return err
		}

		content := buf.Bytes()
		if filepath.Ext(file.name) == ".gz" {
			var gz bytes.Buffer
			gzWriter := gzip.NewWriter(&gz)
			if _, err := gzWriter.Write(content); err != nil {
				return err
			}
			if err := gzWriter.Close(); err != nil {
				return err
			}
			content = gz.Bytes()
		}
		if err := os.WriteFile(filepath.Join(dir, file.name), content, 0644); err != nil {
			return err
		}
	}
	return nil
}

func verify(summary summaryResponse, date string) []string {
	var failures []string
	check := func(name string, got, want any) {
		if got != want {
			failures = append(failures, fmt.Sprintf("%s: got %v, want %v", name, got, want))
		}
	}
	check("date", summary.Date, date)
	check("total_requests", summary.TotalRequests, int64(totalEntries))
	check("unique_ips", summary.UniqueIPs, clientCount)
	check("error_requests", summary.ErrorRequests, int64(totalEntries/5))
	check("error_rate_pct", summary.ErrorRatePct, 20.0)
	check("parse_errors", summary.ParseErrors, int64(malformedLines))
	check("scanned_files", summary.ScannedFiles, 3)
	if len(summary.Anomalies) == 0 || summary.Anomalies[0] != "high error rate (4xx/5xx: 20.0%)" {
		failures = append(failures, fmt.Sprintf("anomalies: got %v", summary.Anomalies))
	}
	return failures
}

func post(url string) (int, error) {
	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func getJSON(url string, target any) error {
	body, err := getText(url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, target)
}

func getText(url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"access-summary/internal/models"
	"access-summary/internal/schedulers"
	"access-summary/internal/shared/loggers"
	"access-summary/internal/shared/svcerrors"
	"access-summary/internal/stores"
	"access-summary/internal/summaries"
	summarymocks "access-summary/internal/summaries/mocks"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeSchedulerStatus struct {
	phase         schedulers.Phase
	lastGenerated string
}

func (f fakeSchedulerStatus) Phase() schedulers.Phase { return f.phase }
func (f fakeSchedulerStatus) LastGenerated() string   { return f.lastGenerated }

func newTestRouter(t *testing.T) (http.Handler, *summarymocks.MockSummaryService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	summaryService := summarymocks.NewMockSummaryService(ctrl)
	status := fakeSchedulerStatus{phase: schedulers.PhaseRunning, lastGenerated: "2025-12-27"}
	return NewRouter(summaryService, status, loggers.Nop()), summaryService
}

func testSummary() *models.DailySummary {
	return &models.DailySummary{
		Date:          "2025-12-28",
		TotalRequests: 3,
		UniqueIPs:     2,
		Anomalies:     []string{"high error rate (4xx/5xx: 33.33%)"},
	}
}

func TestGenerateSummary_Success(t *testing.T) {
	t.Parallel()

	router, summaryService := newTestRouter(t)
	summaryService.EXPECT().
		Generate(gomock.Any(), summaries.GenerateRequest{Date: "2025-12-28", TopN: 5, SlowN: 7}).
		Return(&summaries.GenerateResult{
			Summary:      testSummary(),
			JSONPath:     "/logs/summaries/access_summary_2025-12-28.json",
			MarkdownPath: "/logs/summaries/access_summary_2025-12-28.md",
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/summaries/2025-12-28?top_n=5&slow_n=7", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, contentTypeJSON, rr.Header().Get(headerContentType))

	var response GenerateSummaryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "2025-12-28", response.Date)
	assert.Equal(t, "/logs/summaries/access_summary_2025-12-28.json", response.JSONPath)
	assert.Equal(t, "/logs/summaries/access_summary_2025-12-28.md", response.MarkdownPath)
	require.NotNil(t, response.Summary)
	assert.Equal(t, int64(3), response.Summary.TotalRequests)
}

func TestGenerateSummary_DefaultsWithoutQuery(t *testing.T) {
	t.Parallel()

	router, summaryService := newTestRouter(t)
	summaryService.EXPECT().
		Generate(gomock.Any(), summaries.GenerateRequest{Date: "2025-12-28"}).
		Return(&summaries.GenerateResult{Summary: testSummary()}, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/summaries/2025-12-28", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGenerateSummary_InvalidQuery(t *testing.T) {
	t.Parallel()

	for _, query := range []string{"top_n=ten", "slow_n=1.5"} {
		t.Run(query, func(t *testing.T) {
			t.Parallel()

			// no service call expected
			router, _ := newTestRouter(t)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/summaries/2025-12-28?"+query, nil))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
			assert.Equal(t, codeInvalidQuery, response.ErrorCode)
			assert.NotEmpty(t, response.RequestID)
			assert.Equal(t, response.RequestID, rr.Header().Get(headerRequestID))
		})
	}
}

func TestGenerateSummary_ServiceError(t *testing.T) {
	t.Parallel()

	router, summaryService := newTestRouter(t)
	summaryService.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(nil, svcerrors.NewInvalidArgumentError("SUM_1000", "date must be formatted as YYYY-MM-DD", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/summaries/yesterday", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "SUM_1000", response.ErrorCode)
	assert.Equal(t, "invalid_argument", response.ErrorCategory)
}

func TestGetSummary_ReturnsStoredJSON(t *testing.T) {
	t.Parallel()

	router, summaryService := newTestRouter(t)
	summary := testSummary()
	summaryService.EXPECT().Load(gomock.Any(), "2025-12-28", "").Return(summary, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/summaries/2025-12-28", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	expected, err := stores.EncodeSummary(summary)
	require.NoError(t, err)
	assert.Equal(t, string(expected), rr.Body.String())
}

func TestGetSummary_NotFound(t *testing.T) {
	t.Parallel()

	router, summaryService := newTestRouter(t)
	summaryService.EXPECT().
		Load(gomock.Any(), "2025-12-01", "").
		Return(nil, svcerrors.NewNotFoundError("SUM_1001", "no summary for 2025-12-01", nil)).
		Times(2)

	for _, path := range []string{"/summaries/2025-12-01", "/summaries/2025-12-01/markdown"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "SUM_1001", response.ErrorCode)
		assert.Equal(t, "no summary for 2025-12-01", response.ErrorDescription)
	}
}

func TestGetSummaryMarkdown_RendersStoredSummary(t *testing.T) {
	t.Parallel()

	router, summaryService := newTestRouter(t)
	summaryService.EXPECT().Load(gomock.Any(), "2025-12-28", "").Return(testSummary(), nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/summaries/2025-12-28/markdown", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, contentTypeMarkdown, rr.Header().Get(headerContentType))
	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, "# Access Log Daily Summary (2025-12-28)\n"), body)
	assert.Contains(t, body, "- high error rate (4xx/5xx: 33.33%)")
}

func TestSchedulerStatus(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scheduler", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var response SchedulerStatusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, schedulers.PhaseRunning, response.Phase)
	assert.Equal(t, "2025-12-27", response.LastGenerated)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	// one request so the http collectors have a series
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/scheduler", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "access_summary_http_requests_total")
}

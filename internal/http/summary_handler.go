package http

import (
	"net/http"

	"access-summary/internal/models"
	"access-summary/internal/reports"
	"access-summary/internal/shared/svcerrors"
	"access-summary/internal/stores"
	"access-summary/internal/summaries"
)

// GenerateSummaryResponse is returned by POST /summaries/{date}.
type GenerateSummaryResponse struct {
	Date         string               `json:"date"`
	JSONPath     string               `json:"json_path"`
	MarkdownPath string               `json:"markdown_path"`
	Summary      *models.DailySummary `json:"summary"`
}

type generateSummaryHandler struct {
	summaryService summaries.SummaryService
}

func NewGenerateSummaryHandler(summaryService summaries.SummaryService) AppHttpHandler {
	return &generateSummaryHandler{summaryService: summaryService}
}

// Handle processes POST /summaries/{date}?top_n=&slow_n= and regenerates the day.
func (h *generateSummaryHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	topN, err := queryInt(r, queryTopN)
	if err != nil {
		return err
	}
	slowN, err := queryInt(r, querySlowN)
	if err != nil {
		return err
	}

	result, err := h.summaryService.Generate(r.Context(), summaries.GenerateRequest{
		Date:  dateParam(r),
		TopN:  topN,
		SlowN: slowN,
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, GenerateSummaryResponse{
		Date:         result.Summary.Date,
		JSONPath:     result.JSONPath,
		MarkdownPath: result.MarkdownPath,
		Summary:      result.Summary,
	})
	return nil
}

type getSummaryHandler struct {
	summaryService summaries.SummaryService
}

func NewGetSummaryHandler(summaryService summaries.SummaryService) AppHttpHandler {
	return &getSummaryHandler{summaryService: summaryService}
}

// Handle processes GET /summaries/{date}. The body matches the published JSON file.
func (h *getSummaryHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	summary, err := h.summaryService.Load(r.Context(), dateParam(r), "")
	if err != nil {
		return err
	}

	body, err := stores.EncodeSummary(summary)
	if err != nil {
		return svcerrors.NewInternalErrorUndefined(err)
	}
	writeBody(w, http.StatusOK, contentTypeJSON, body)
	return nil
}

type getSummaryMarkdownHandler struct {
	summaryService summaries.SummaryService
}

func NewGetSummaryMarkdownHandler(summaryService summaries.SummaryService) AppHttpHandler {
	return &getSummaryMarkdownHandler{summaryService: summaryService}
}

// Handle processes GET /summaries/{date}/markdown, rendering the stored JSON.
func (h *getSummaryMarkdownHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	summary, err := h.summaryService.Load(r.Context(), dateParam(r), "")
	if err != nil {
		return err
	}

	writeBody(w, http.StatusOK, contentTypeMarkdown, []byte(reports.RenderMarkdown(summary)))
	return nil
}

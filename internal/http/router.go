package http

import (
	"net/http"

	"access-summary/internal/shared/loggers"
	"access-summary/internal/shared/metrics"
	"access-summary/internal/summaries"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the admin HTTP router.
func NewRouter(summaryService summaries.SummaryService, schedulerStatus SchedulerStatus, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	generateSummaryHandler := NewGenerateSummaryHandler(summaryService)
	getSummaryHandler := NewGetSummaryHandler(summaryService)
	getSummaryMarkdownHandler := NewGetSummaryMarkdownHandler(summaryService)
	schedulerStatusHandler := NewSchedulerStatusHandler(schedulerStatus)

	// Routes
	router.Route("/summaries/{"+paramDate+"}", func(r chi.Router) {
		r.Post("/", errorHandlingAdapter(generateSummaryHandler))
		r.Get("/", errorHandlingAdapter(getSummaryHandler))
		r.Get("/markdown", errorHandlingAdapter(getSummaryMarkdownHandler))
	})
	router.Get("/scheduler", errorHandlingAdapter(schedulerStatusHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}

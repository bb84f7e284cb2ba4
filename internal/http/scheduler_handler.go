package http

import (
	"net/http"

	"access-summary/internal/schedulers"
)

// SchedulerStatus is the read side of the scheduler.
type SchedulerStatus interface {
	Phase() schedulers.Phase
	LastGenerated() string
}

type SchedulerStatusResponse struct {
	Phase         schedulers.Phase `json:"phase"`
	LastGenerated string           `json:"last_generated,omitempty"`
}

type schedulerStatusHandler struct {
	status SchedulerStatus
}

func NewSchedulerStatusHandler(status SchedulerStatus) AppHttpHandler {
	return &schedulerStatusHandler{status: status}
}

// Handle processes GET /scheduler.
func (h *schedulerStatusHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, SchedulerStatusResponse{
		Phase:         h.status.Phase(),
		LastGenerated: h.status.LastGenerated(),
	})
	return nil
}

package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	headerRequestID   = "x-request-id"
	headerContentType = "content-type"

	contentTypeJSON     = "application/json"
	contentTypeMarkdown = "text/markdown; charset=utf-8"

	paramDate  = "date"
	queryTopN  = "top_n"
	querySlowN = "slow_n"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

func dateParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, paramDate))
}

// queryInt returns 0 when the parameter is absent so the service default applies.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidQuery(name, err)
	}
	return value, nil
}

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/habitkit/habit-api/internal/dates"
	"github.com/habitkit/habit-api/internal/middleware"
	"github.com/habitkit/habit-api/internal/reports"
)

// ReportHandler handles aggregation report requests
type ReportHandler struct {
	reporter *reports.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(reporter *reports.Service) *ReportHandler {
	return &ReportHandler{reporter: reporter}
}

// RegisterRoutes registers report routes on the given router
// The router should already have the /reports prefix
func (h *ReportHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/today", h.TodayView).Methods("GET")
	r.HandleFunc("/weekly", h.WeeklySummary).Methods("GET")
}

// TodayView returns the owner's habits partitioned by today's logging state
func (h *ReportHandler) TodayView(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	today, ok := parseTodayParam(w, r)
	if !ok {
		return
	}

	report, err := h.reporter.TodayView(r.Context(), ownerID, today)
	if err != nil {
		respondEngineError(w, err, "Failed to build today view")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// WeeklySummary returns the dense per-day summary. The range defaults to the
// seven days ending today; ?start and ?end override it.
func (h *ReportHandler) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	today, ok := parseTodayParam(w, r)
	if !ok {
		return
	}

	endDate := dates.Format(today)
	startDate := dates.Format(dates.AddDays(today, -6))
	if s := r.URL.Query().Get("start"); s != "" {
		startDate = s
	}
	if e := r.URL.Query().Get("end"); e != "" {
		endDate = e
	}

	report, err := h.reporter.WeeklySummary(r.Context(), ownerID, startDate, endDate)
	if err != nil {
		respondEngineError(w, err, "Failed to build weekly summary")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

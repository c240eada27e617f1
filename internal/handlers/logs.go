package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/habitkit/habit-api/internal/habits"
	"github.com/habitkit/habit-api/internal/middleware"
	"github.com/habitkit/habit-api/internal/models"
	"github.com/habitkit/habit-api/internal/validation"
)

// MaxLogNotesLength is the maximum length for completion log notes
const MaxLogNotesLength = 2000

// LogHandler handles completion log requests
type LogHandler struct {
	engine *habits.Service
}

// NewLogHandler creates a new log handler
func NewLogHandler(engine *habits.Service) *LogHandler {
	return &LogHandler{engine: engine}
}

// RegisterRoutes registers log routes on the given router
// The router should already have the /habits prefix
func (h *LogHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/{id}/logs", h.ListLogs).Methods("GET")
	r.HandleFunc("/{id}/logs", h.LogCompletion).Methods("POST")
	r.HandleFunc("/{id}/logs/{logId}", h.DeleteLog).Methods("DELETE")
}

// LogCompletionRequest represents a completion log write for one calendar day
type LogCompletionRequest struct {
	Date            string  `json:"date" validate:"required,calendar_date"`
	Status          string  `json:"status" validate:"required,log_status"`
	CompletionCount *int    `json:"completion_count,omitempty" validate:"omitempty,min=0,max=1000"`
	QualityRating   *int    `json:"quality_rating,omitempty" validate:"omitempty,min=1,max=10"`
	MoodBefore      *int    `json:"mood_before,omitempty" validate:"omitempty,min=1,max=10"`
	MoodAfter       *int    `json:"mood_after,omitempty" validate:"omitempty,min=1,max=10"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// LogCompletion records (or overwrites) the log for one (habit, day)
func (h *LogHandler) LogCompletion(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	habitID, ok := parseIDParam(w, r, "id", "habit")
	if !ok {
		return
	}

	var req LogCompletionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	if req.Notes != nil {
		sanitized := validation.SanitizeText(*req.Notes)
		req.Notes = &sanitized
	}

	log, err := h.engine.LogCompletion(r.Context(), ownerID, habitID, habits.LogInput{
		Date:            req.Date,
		Status:          models.LogStatus(req.Status),
		CompletionCount: req.CompletionCount,
		QualityRating:   req.QualityRating,
		MoodBefore:      req.MoodBefore,
		MoodAfter:       req.MoodAfter,
		Notes:           req.Notes,
	})
	if err != nil {
		respondEngineError(w, err, "Failed to record completion log")
		return
	}

	respondJSON(w, http.StatusCreated, log)
}

// ListLogs lists a habit's logs, newest day first, with optional filters
func (h *LogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	habitID, ok := parseIDParam(w, r, "id", "habit")
	if !ok {
		return
	}

	var startDate, endDate *string
	if s := r.URL.Query().Get("start"); s != "" {
		startDate = &s
	}
	if e := r.URL.Query().Get("end"); e != "" {
		endDate = &e
	}

	var status *models.LogStatus
	if s := r.URL.Query().Get("status"); s != "" {
		if err := validation.ValidateLogStatus(s); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		sEnum := models.LogStatus(s)
		status = &sEnum
	}

	logs, err := h.engine.ListLogs(r.Context(), ownerID, habitID, startDate, endDate, status)
	if err != nil {
		respondEngineError(w, err, "Failed to retrieve logs")
		return
	}

	respondJSON(w, http.StatusOK, logs)
}

// DeleteLog undoes a single day's log
func (h *LogHandler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	habitID, ok := parseIDParam(w, r, "id", "habit")
	if !ok {
		return
	}
	logID, ok := parseIDParam(w, r, "logId", "log")
	if !ok {
		return
	}

	if err := h.engine.DeleteLog(r.Context(), ownerID, habitID, logID); err != nil {
		respondEngineError(w, err, "Failed to delete log")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

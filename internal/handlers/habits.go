package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/habitkit/habit-api/internal/dates"
	"github.com/habitkit/habit-api/internal/habits"
	"github.com/habitkit/habit-api/internal/middleware"
	"github.com/habitkit/habit-api/internal/models"
	"github.com/habitkit/habit-api/internal/validation"
)

const (
	// MaxHabitNameLength is the maximum length for a habit name
	MaxHabitNameLength = 200
	// DefaultPageSize is the default page size for pagination
	DefaultPageSize = 100
	// MaxPageSize is the maximum page size for pagination
	MaxPageSize = 500
)

// HabitHandler handles habit registry requests
type HabitHandler struct {
	engine *habits.Service
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(engine *habits.Service) *HabitHandler {
	return &HabitHandler{engine: engine}
}

// RegisterRoutes registers habit routes on the given router
// The router should already have the /habits prefix (e.g., from apiRouter.PathPrefix("/habits"))
func (h *HabitHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListHabits).Methods("GET")
	r.HandleFunc("", h.CreateHabit).Methods("POST")
	r.HandleFunc("/{id}", h.GetHabit).Methods("GET")
	r.HandleFunc("/{id}", h.UpdateHabit).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteHabit).Methods("DELETE")
	r.HandleFunc("/{id}/archive", h.ArchiveHabit).Methods("POST")
	r.HandleFunc("/{id}/restore", h.RestoreHabit).Methods("POST")
}

// CreateHabitRequest represents a create habit request
type CreateHabitRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	FrequencyType  string `json:"frequency_type" validate:"required,frequency_type"`
	FrequencyValue int    `json:"frequency_value" validate:"omitempty,min=1,max=365"`
	TargetCount    int    `json:"target_count" validate:"omitempty,min=1,max=1000"`
	Color          string `json:"color" validate:"omitempty,max=32"`
}

// UpdateHabitRequest represents an update habit request
type UpdateHabitRequest struct {
	Name           *string `json:"name,omitempty"`
	FrequencyType  *string `json:"frequency_type,omitempty"`
	FrequencyValue *int    `json:"frequency_value,omitempty"`
	TargetCount    *int    `json:"target_count,omitempty"`
	Color          *string `json:"color,omitempty"`
}

// ListHabitsResponse represents the paginated response for listing habits
type ListHabitsResponse struct {
	Habits     []*habits.HabitDetail `json:"habits"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	Total      int                   `json:"total"`
	TotalPages int                   `json:"total_pages"`
}

// ListHabits lists the owner's habits with pagination
func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	includeArchived := r.URL.Query().Get("include_archived") == "true"
	page, pageSize := parsePagination(r)

	today, ok := parseTodayParam(w, r)
	if !ok {
		return
	}

	details, total, err := h.engine.ListHabits(r.Context(), ownerID, includeArchived, page, pageSize, today)
	if err != nil {
		respondEngineError(w, err, "Failed to retrieve habits")
		return
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	respondJSON(w, http.StatusOK, ListHabitsResponse{
		Habits:     details,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	})
}

// CreateHabit registers a new habit
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	var req CreateHabitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	req.Name = validation.SanitizeText(req.Name)
	if req.Name == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Name is required and cannot be empty after sanitization")
		return
	}

	if req.FrequencyValue == 0 {
		req.FrequencyValue = 1
	}
	if req.TargetCount == 0 {
		req.TargetCount = 1
	}

	habit, err := h.engine.CreateHabit(r.Context(), ownerID, habits.CreateHabitInput{
		Name:           req.Name,
		FrequencyType:  models.FrequencyType(req.FrequencyType),
		FrequencyValue: req.FrequencyValue,
		TargetCount:    req.TargetCount,
		Color:          req.Color,
	})
	if err != nil {
		respondEngineError(w, err, "Failed to create habit")
		return
	}

	respondJSON(w, http.StatusCreated, habit)
}

// GetHabit retrieves a habit with its schedule view
func (h *HabitHandler) GetHabit(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	habitID, ok := parseIDParam(w, r, "id", "habit")
	if !ok {
		return
	}

	today, ok := parseTodayParam(w, r)
	if !ok {
		return
	}

	detail, err := h.engine.GetHabit(r.Context(), ownerID, habitID, today)
	if err != nil {
		respondEngineError(w, err, "Failed to retrieve habit")
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// UpdateHabit updates an existing habit
func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	habitID, ok := parseIDParam(w, r, "id", "habit")
	if !ok {
		return
	}

	var req UpdateHabitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := habits.UpdateHabitInput{
		FrequencyValue: req.FrequencyValue,
		TargetCount:    req.TargetCount,
		Color:          req.Color,
	}

	if req.Name != nil {
		sanitized := validation.SanitizeText(*req.Name)
		if sanitized == "" {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Name cannot be empty after sanitization")
			return
		}
		if len(sanitized) > MaxHabitNameLength {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Name exceeds maximum length of %d characters", MaxHabitNameLength))
			return
		}
		input.Name = &sanitized
	}
	if req.FrequencyType != nil {
		if err := validation.ValidateFrequencyType(*req.FrequencyType); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		ft := models.FrequencyType(*req.FrequencyType)
		input.FrequencyType = &ft
	}

	habit, err := h.engine.UpdateHabit(r.Context(), ownerID, habitID, input)
	if err != nil {
		respondEngineError(w, err, "Failed to update habit")
		return
	}

	respondJSON(w, http.StatusOK, habit)
}

// ArchiveHabit soft-deletes a habit, keeping its logs
func (h *HabitHandler) ArchiveHabit(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	habitID, ok := parseIDParam(w, r, "id", "habit")
	if !ok {
		return
	}

	if err := h.engine.ArchiveHabit(r.Context(), ownerID, habitID); err != nil {
		respondEngineError(w, err, "Failed to archive habit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RestoreHabit reverses an archive
func (h *HabitHandler) RestoreHabit(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	habitID, ok := parseIDParam(w, r, "id", "habit")
	if !ok {
		return
	}

	if err := h.engine.RestoreHabit(r.Context(), ownerID, habitID); err != nil {
		respondEngineError(w, err, "Failed to restore habit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteHabit permanently deletes a habit and its logs; requires ?permanent=true
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerFromContext(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "Owner not found in context")
		return
	}

	habitID, ok := parseIDParam(w, r, "id", "habit")
	if !ok {
		return
	}

	permanent := r.URL.Query().Get("permanent") == "true"
	if err := h.engine.DeleteHabit(r.Context(), ownerID, habitID, permanent); err != nil {
		respondEngineError(w, err, "Failed to delete habit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parsePagination extracts page and page_size query parameters
func parsePagination(r *http.Request) (int, int) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	pageSize := DefaultPageSize
	if ps := r.URL.Query().Get("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 {
			if parsed > MaxPageSize {
				pageSize = MaxPageSize
			} else {
				pageSize = parsed
			}
		}
	}

	return page, pageSize
}

// parseTodayParam resolves the caller's calendar day from the optional ?today
// query parameter. The engine never resolves timezones; the caller's "today"
// is authoritative.
func parseTodayParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	value := r.URL.Query().Get("today")
	if value == "" {
		return dates.Today(), true
	}
	day, err := dates.Parse(value)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return time.Time{}, false
	}
	return day, true
}

// parseIDParam parses a UUID path variable
func parseIDParam(w http.ResponseWriter, r *http.Request, name, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Invalid %s ID", entity))
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes a JSON request body, handling size-limit errors
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return false
	}
	return true
}

// respondValidationError maps validator errors onto a 400 response
func respondValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", fieldError.Error()))
			return
		}
	}
	respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
}

// respondEngineError maps the engine error taxonomy onto HTTP statuses
func respondEngineError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, habits.ErrNotFound):
		respondJSONError(w, http.StatusNotFound, "Not Found", "Resource not found")
	case errors.Is(err, habits.ErrInvalidInput):
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, habits.ErrStoreUnavailable):
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Store temporarily unavailable")
	default:
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", fallback)
	}
}

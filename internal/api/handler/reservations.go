package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/delicato-app/restaurant-service/internal/api"
	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/models"
)

// ReservationHandler handles the manager reservation board.
type ReservationHandler struct {
	reservations *repository.ReservationRepository
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservations *repository.ReservationRepository) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// HandleReservations dispatches /reservations and /reservations/{id} requests.
func (h *ReservationHandler) HandleReservations(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/reservations")
	path = strings.TrimPrefix(path, "/")

	switch {
	case path == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case path != "" && r.Method == http.MethodPatch:
		h.update(w, r, path)
	default:
		api.NotFound(w)
	}
}

// list serves reservations inside an optional from/to window. Unparseable
// bounds are ignored rather than rejected.
func (h *ReservationHandler) list(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			from = &parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			to = &parsed
		}
	}

	reservations, err := h.reservations.List(r.Context(), from, to)
	if err != nil {
		api.ServerError(w, "Failed to fetch reservations", err)
		return
	}

	api.JSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) update(w http.ResponseWriter, r *http.Request, rawID string) {
	var req models.ReservationUpdateRequest
	body, err := readBody(r)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var status *models.ReservationStatus
	if req.Status != nil && *req.Status != "" {
		candidate := models.ReservationStatus(*req.Status)
		if !models.ValidReservationStatus(candidate) {
			api.Error(w, http.StatusBadRequest, "Invalid reservation status")
			return
		}
		status = &candidate
	}

	// An explicit null clears the notes; an absent key leaves them alone.
	var rawFields map[string]json.RawMessage
	clearNotes := false
	if err := json.Unmarshal(body, &rawFields); err == nil {
		_, notesSent := rawFields["notes"]
		clearNotes = notesSent && req.Notes == nil
	}

	if status == nil && req.Notes == nil && !clearNotes {
		api.Error(w, http.StatusBadRequest, "No updates provided")
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid reservation id")
		return
	}

	updated, err := h.reservations.Update(r.Context(), id, status, req.Notes, clearNotes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Reservation not found")
			return
		}
		api.ServerError(w, "Failed to update reservation", err)
		return
	}

	updated.HydrateViews()
	api.JSON(w, http.StatusOK, updated)
}

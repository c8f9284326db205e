package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/delicato-app/restaurant-service/internal/api"
	"github.com/delicato-app/restaurant-service/internal/middleware"
	"github.com/delicato-app/restaurant-service/internal/service"
)

// SettingsHandler handles the loyalty settings surface.
type SettingsHandler struct {
	loyalty *service.LoyaltyService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(loyalty *service.LoyaltyService) *SettingsHandler {
	return &SettingsHandler{loyalty: loyalty}
}

// HandleSettings dispatches /settings/loyalty requests.
func (h *SettingsHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/settings")
	path = strings.TrimPrefix(path, "/")

	if path != "loyalty" {
		api.NotFound(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getLoyalty(w, r)
	case http.MethodPut:
		h.putLoyalty(w, r)
	default:
		api.NotFound(w)
	}
}

func (h *SettingsHandler) getLoyalty(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, map[string]float64{
		"pointsPerDollar": h.loyalty.PointsPerDollar(r.Context()),
	})
}

func (h *SettingsHandler) putLoyalty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PointsPerDollar *float64 `json:"pointsPerDollar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.PointsPerDollar == nil || math.IsNaN(*req.PointsPerDollar) || math.IsInf(*req.PointsPerDollar, 0) ||
		*req.PointsPerDollar < 0 || *req.PointsPerDollar > 1000 {
		api.Error(w, http.StatusBadRequest, "Points per dollar must be between 0 and 1000.")
		return
	}

	var updatedBy *uuid.UUID
	if claims := middleware.GetSession(r.Context()); claims != nil {
		if id, err := uuid.Parse(claims.UserID); err == nil {
			updatedBy = &id
		}
	}

	setting, err := h.loyalty.SetPointsPerDollar(r.Context(), *req.PointsPerDollar, updatedBy)
	if err != nil {
		api.ServerError(w, "Failed to update loyalty settings", err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"pointsPerDollar": *req.PointsPerDollar,
		"updatedAt":       setting.UpdatedAt,
	})
}

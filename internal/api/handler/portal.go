package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/delicato-app/restaurant-service/internal/api"
	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/middleware"
	"github.com/delicato-app/restaurant-service/internal/service"
)

// PortalHandler serves the signed-in customer's dashboard aggregate.
type PortalHandler struct {
	portal *service.PortalService
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(portal *service.PortalService) *PortalHandler {
	return &PortalHandler{portal: portal}
}

// HandleDashboard serves GET /customer-portal/dashboard. The customer gate
// runs upstream; the claims carry the customer id.
func (h *PortalHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.NotFound(w)
		return
	}

	claims := middleware.GetSession(r.Context())
	if claims == nil {
		api.Error(w, http.StatusUnauthorized, "Customer authentication required")
		return
	}

	customerID, err := uuid.Parse(claims.CustomerID)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	dashboard, err := h.portal.Dashboard(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Customer not found")
			return
		}
		api.ServerError(w, "Failed to load customer dashboard", err)
		return
	}

	api.JSON(w, http.StatusOK, dashboard)
}

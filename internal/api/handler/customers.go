package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/delicato-app/restaurant-service/internal/api"
	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/service"
)

// CustomerHandler handles the manager-facing customer lookups.
type CustomerHandler struct {
	portal *service.PortalService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(portal *service.PortalService) *CustomerHandler {
	return &CustomerHandler{portal: portal}
}

// HandleCustomers dispatches /customers/{id}/summary, /customers/{id}/deals,
// and /customers/{id}/activity requests.
func (h *CustomerHandler) HandleCustomers(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/customers")
	path = strings.TrimPrefix(path, "/")

	if r.Method != http.MethodGet {
		api.NotFound(w)
		return
	}

	rawID, view, found := strings.Cut(path, "/")
	if !found {
		api.NotFound(w)
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	switch view {
	case "summary":
		h.summary(w, r, id)
	case "deals":
		h.deals(w, r, id)
	case "activity":
		h.activity(w, r, id)
	default:
		api.NotFound(w)
	}
}

func (h *CustomerHandler) summary(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	summary, walletBalance, err := h.portal.Summary(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Customer not found")
			return
		}
		api.ServerError(w, "Failed to fetch customer summary", err)
		return
	}

	api.JSON(w, http.StatusOK, struct {
		service.CustomerSummary
		WalletBalanceCents int64 `json:"walletBalanceCents"`
	}{
		CustomerSummary:    *summary,
		WalletBalanceCents: walletBalance,
	})
}

func (h *CustomerHandler) deals(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	deals, err := h.portal.Deals(r.Context(), id)
	if err != nil {
		api.ServerError(w, "Failed to fetch customer deals", err)
		return
	}

	api.JSON(w, http.StatusOK, deals)
}

func (h *CustomerHandler) activity(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	activity, err := h.portal.CustomerActivity(r.Context(), id)
	if err != nil {
		api.ServerError(w, "Failed to fetch customer activity", err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"reservations": activity.Reservations,
		"orders":       activity.Orders,
		"points":       activity.Loyalty,
	})
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/delicato-app/restaurant-service/internal/api"
	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/middleware"
	"github.com/delicato-app/restaurant-service/internal/models"
	"github.com/delicato-app/restaurant-service/internal/service"
	"github.com/delicato-app/restaurant-service/internal/websockets"
)

// OrderHandler handles order requests. Creation is open to guests; listing
// and status changes are manager only.
type OrderHandler struct {
	orders *service.OrderService
	hub    *websockets.Hub
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *service.OrderService, hub *websockets.Hub) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		hub:    hub,
	}
}

// requireManager gates a single handler branch on a manager session. Role
// mismatch reads the same as no session.
func requireManager(w http.ResponseWriter, r *http.Request) bool {
	claims := middleware.GetSession(r.Context())
	if claims == nil || claims.Role != models.RoleManager {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return false
	}
	return true
}

// HandleOrders dispatches /orders and /orders/{id}/status requests.
func (h *OrderHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/orders")
	path = strings.TrimPrefix(path, "/")

	switch {
	case path == "" && r.Method == http.MethodGet:
		if !requireManager(w, r) {
			return
		}
		h.list(w, r)
	case path == "" && r.Method == http.MethodPost:
		h.create(w, r)
	case strings.HasSuffix(path, "/status") && r.Method == http.MethodPatch:
		if !requireManager(w, r) {
			return
		}
		h.updateStatus(w, r, strings.TrimSuffix(path, "/status"))
	default:
		api.NotFound(w)
	}
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	var status *models.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		candidate := models.OrderStatus(raw)
		if !models.ValidOrderStatus(candidate) {
			api.Error(w, http.StatusBadRequest, "Invalid order status")
			return
		}
		status = &candidate
	}

	orders, err := h.orders.List(r.Context(), status)
	if err != nil {
		api.ServerError(w, "Failed to fetch orders", err)
		return
	}

	api.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session := middleware.GetSession(r.Context())

	response, err := h.orders.Create(r.Context(), req, session)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoItems):
			api.Error(w, http.StatusBadRequest, "At least one item is required")
		case errors.Is(err, service.ErrItemNameRequired):
			api.Error(w, http.StatusBadRequest, "Each item requires a name")
		case errors.Is(err, service.ErrItemPriceRequired):
			api.Error(w, http.StatusBadRequest, "Each item requires a numeric unitPriceCents")
		case errors.Is(err, service.ErrZeroTotal):
			api.Error(w, http.StatusBadRequest, "Order total must be greater than zero")
		case errors.Is(err, service.ErrInvalidCustomerID):
			api.Error(w, http.StatusBadRequest, "Invalid customer id")
		default:
			api.ServerError(w, "Failed to create order", err)
		}
		return
	}

	h.hub.BroadcastOrder(websockets.EventOrderCreated, &response.Order)

	api.JSON(w, http.StatusCreated, response)
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request, rawID string) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Status == "" {
		api.Error(w, http.StatusBadRequest, "Status is required")
		return
	}

	status := models.OrderStatus(req.Status)
	if !models.ValidOrderStatus(status) {
		api.Error(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Order not found")
			return
		}
		api.ServerError(w, "Failed to update order status", err)
		return
	}

	h.hub.BroadcastOrder(websockets.EventOrderStatusChanged, order)

	api.JSON(w, http.StatusOK, order)
}

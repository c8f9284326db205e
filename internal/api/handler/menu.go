package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/delicato-app/restaurant-service/internal/api"
	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/middleware"
	"github.com/delicato-app/restaurant-service/internal/models"
)

// MenuHandler handles menu item requests. Listing is public; everything else
// is manager only, gated by the router.
type MenuHandler struct {
	menu *repository.MenuRepository
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menu *repository.MenuRepository) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// HandleMenu dispatches /menu and /menu/{id} requests.
func (h *MenuHandler) HandleMenu(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/menu")
	path = strings.TrimPrefix(path, "/")

	switch r.Method {
	case http.MethodGet:
		if path != "" {
			api.NotFound(w)
			return
		}
		h.list(w, r)
	case http.MethodPost:
		if path != "" {
			api.NotFound(w)
			return
		}
		h.create(w, r)
	case http.MethodPatch:
		id, err := uuid.Parse(path)
		if err != nil {
			api.Error(w, http.StatusBadRequest, "Invalid menu item id")
			return
		}
		h.update(w, r, id)
	case http.MethodDelete:
		id, err := uuid.Parse(path)
		if err != nil {
			api.Error(w, http.StatusBadRequest, "Invalid menu item id")
			return
		}
		h.delete(w, r, id)
	default:
		api.NotFound(w)
	}
}

// list serves the storefront menu. `?include=all` exposes inactive items and
// requires a manager session.
func (h *MenuHandler) list(w http.ResponseWriter, r *http.Request) {
	includeAll := r.URL.Query().Get("include") == "all"
	if includeAll {
		claims := middleware.GetSession(r.Context())
		if claims == nil || claims.Role != models.RoleManager {
			api.Error(w, http.StatusUnauthorized, "Authentication required")
			return
		}
	}

	items, err := h.menu.List(r.Context(), includeAll)
	if err != nil {
		api.ServerError(w, "Failed to fetch menu items", err)
		return
	}

	api.JSON(w, http.StatusOK, items)
}

func (h *MenuHandler) create(w http.ResponseWriter, r *http.Request) {
	var req models.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.PriceCents == nil || math.IsNaN(*req.PriceCents) || math.IsInf(*req.PriceCents, 0) {
		api.Error(w, http.StatusBadRequest, "Name and numeric priceCents are required")
		return
	}

	item := models.MenuItem{
		Name:       req.Name,
		PriceCents: int64(math.Round(*req.PriceCents)),
		IsActive:   true,
	}
	if req.Description != "" {
		description := req.Description
		item.Description = &description
	}
	if req.Category != "" {
		category := req.Category
		item.Category = &category
	}
	if req.ImageURL != "" {
		imageURL := req.ImageURL
		item.ImageURL = &imageURL
	}
	if req.SortOrder != nil && !math.IsNaN(*req.SortOrder) && !math.IsInf(*req.SortOrder, 0) {
		sortOrder := int(math.Round(*req.SortOrder))
		item.SortOrder = &sortOrder
	}
	if len(req.IsActive) > 0 {
		item.IsActive = api.Truthy(req.IsActive)
	}

	created, err := h.menu.Create(r.Context(), item)
	if err != nil {
		api.ServerError(w, "Failed to create menu item", err)
		return
	}

	api.JSON(w, http.StatusCreated, created)
}

// update copies only the whitelisted fields out of the body; anything else in
// the payload is ignored.
func (h *MenuHandler) update(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req models.MenuItemUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var update repository.MenuItemUpdate

	if req.Name != nil {
		if trimmed := strings.TrimSpace(*req.Name); trimmed != "" {
			update.Name = &trimmed
		}
	}
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		update.Description = &trimmed
	}
	if req.Category != nil {
		trimmed := strings.TrimSpace(*req.Category)
		update.Category = &trimmed
	}
	if req.ImageURL != nil {
		trimmed := strings.TrimSpace(*req.ImageURL)
		update.ImageURL = &trimmed
	}
	if req.PriceCents != nil {
		if math.IsNaN(*req.PriceCents) || math.IsInf(*req.PriceCents, 0) {
			api.Error(w, http.StatusBadRequest, "priceCents must be numeric")
			return
		}
		price := int64(math.Round(*req.PriceCents))
		if price < 0 {
			price = 0
		}
		update.PriceCents = &price
	}
	if req.SortOrder != nil {
		if math.IsNaN(*req.SortOrder) || math.IsInf(*req.SortOrder, 0) {
			api.Error(w, http.StatusBadRequest, "sortOrder must be numeric")
			return
		}
		sortOrder := int(math.Round(*req.SortOrder))
		update.SortOrder = &sortOrder
	}
	if len(req.IsActive) > 0 {
		isActive := api.Truthy(req.IsActive)
		update.IsActive = &isActive
	}

	if update.Empty() {
		api.Error(w, http.StatusBadRequest, "No valid updates provided")
		return
	}

	updated, err := h.menu.Update(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Menu item not found")
			return
		}
		api.ServerError(w, "Failed to update menu item", err)
		return
	}

	api.JSON(w, http.StatusOK, updated)
}

func (h *MenuHandler) delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.menu.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Menu item not found")
			return
		}
		api.ServerError(w, "Failed to delete menu item", err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

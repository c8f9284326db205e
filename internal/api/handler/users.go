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
)

// UserHandler handles team account management.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// HandleUsers dispatches /users and /users/{id} requests.
func (h *UserHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/users")
	path = strings.TrimPrefix(path, "/")

	switch {
	case path == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case path != "" && r.Method == http.MethodPatch:
		h.update(w, r, path)
	case path != "" && r.Method == http.MethodDelete:
		h.delete(w, r, path)
	default:
		api.NotFound(w)
	}
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		api.ServerError(w, "Failed to fetch users", err)
		return
	}

	api.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req models.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.users.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyName):
			api.Error(w, http.StatusBadRequest, "Name cannot be empty")
		case errors.Is(err, service.ErrUnsupportedRole):
			api.Error(w, http.StatusBadRequest, "Unsupported role")
		case errors.Is(err, service.ErrNoUpdates):
			api.Error(w, http.StatusBadRequest, "No valid fields to update")
		case errors.Is(err, service.ErrLastManager):
			api.Error(w, http.StatusBadRequest, "At least one manager must remain")
		case errors.Is(err, repository.ErrNotFound):
			api.Error(w, http.StatusNotFound, "User not found")
		default:
			api.ServerError(w, "Failed to update user", err)
		}
		return
	}

	api.JSON(w, http.StatusOK, updated)
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	claims := middleware.GetSession(r.Context())
	var callerID string
	if claims != nil {
		callerID = claims.UserID
	}

	if err := h.users.Delete(r.Context(), callerID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDelete):
			api.Error(w, http.StatusBadRequest, "You cannot remove your own account")
		case errors.Is(err, service.ErrLastManager):
			api.Error(w, http.StatusBadRequest, "At least one manager must remain")
		case errors.Is(err, repository.ErrNotFound):
			api.Error(w, http.StatusNotFound, "User not found")
		default:
			api.ServerError(w, "Failed to delete user", err)
		}
		return
	}

	api.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

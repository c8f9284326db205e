package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/delicato-app/restaurant-service/internal/api"
	"github.com/delicato-app/restaurant-service/internal/config"
	"github.com/delicato-app/restaurant-service/internal/middleware"
	"github.com/delicato-app/restaurant-service/internal/models"
	"github.com/delicato-app/restaurant-service/internal/service"
)

// AuthHandler handles sign-up, sign-in, sign-out, and session introspection.
type AuthHandler struct {
	auth       *service.AuthService
	production bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, server config.Server) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		production: server.Production(),
	}
}

// HandleAuth dispatches /auth/* requests.
func (h *AuthHandler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/auth")
	path = strings.TrimPrefix(path, "/")

	switch {
	case path == "signup" && r.Method == http.MethodPost:
		h.signUp(w, r)
	case path == "signin" && r.Method == http.MethodPost:
		h.signIn(w, r)
	case path == "signout" && r.Method == http.MethodPost:
		h.signOut(w, r)
	case path == "session" && r.Method == http.MethodGet:
		h.session(w, r)
	default:
		api.NotFound(w)
	}
}

// setSessionCookie writes the signed session token. MaxAge mirrors the token
// TTL so the cookie and the token expire together.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     service.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.production,
	})
}

func (h *AuthHandler) signUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" ||
		strings.TrimSpace(req.Email) == "" || req.Password == "" {
		api.Error(w, http.StatusBadRequest, "First name, last name, email, and password are required")
		return
	}

	result, err := h.auth.SignUp(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooShort):
			api.Error(w, http.StatusBadRequest, "Password must be at least 8 characters")
		case errors.Is(err, service.ErrEmailTaken):
			api.Error(w, http.StatusConflict, "An account with this email already exists")
		default:
			api.ServerError(w, "Failed to create account", err)
		}
		return
	}

	h.setSessionCookie(w, result.Token, result.ExpiresIn)

	api.JSON(w, http.StatusCreated, map[string]interface{}{
		"user":      result.Claims,
		"customer":  result.Customer,
		"expiresIn": result.ExpiresIn,
	})
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		api.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.auth.SignIn(r.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			api.Error(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrRoleNotAllowed):
			api.Error(w, http.StatusForbidden, "Unauthorized")
		case errors.Is(err, service.ErrCustomerNotLinked):
			api.Error(w, http.StatusForbidden, "Customer account not configured")
		default:
			api.ServerError(w, "Failed to sign in", err)
		}
		return
	}

	h.setSessionCookie(w, result.Token, result.ExpiresIn)

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"user":      result.Claims,
		"expiresIn": result.ExpiresIn,
	})
}

func (h *AuthHandler) signOut(w http.ResponseWriter, _ *http.Request) {
	h.setSessionCookie(w, "", -1)
	api.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetSession(r.Context())
	if claims == nil {
		api.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{"user": claims})
}

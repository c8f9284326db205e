package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/delicato-app/restaurant-service/internal/api"
	"github.com/delicato-app/restaurant-service/internal/models"
	"github.com/delicato-app/restaurant-service/internal/service"
)

// contextKey is a type for context keys
type contextKey string

const sessionKey contextKey = "session"

// Session extracts and verifies the signed session cookie. An absent or
// invalid token never rejects here; the request simply continues anonymous
// and role-gated handlers reject downstream.
func Session(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(cookie.Value)
			if err != nil {
				logrus.WithError(err).Debug("Invalid session token")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSession returns a context carrying the given claims.
func WithSession(ctx context.Context, claims *service.SessionClaims) context.Context {
	return context.WithValue(ctx, sessionKey, claims)
}

// GetSession returns the session claims attached to the request, or nil for
// anonymous callers.
func GetSession(ctx context.Context) *service.SessionClaims {
	claims, _ := ctx.Value(sessionKey).(*service.SessionClaims)
	return claims
}

// RequireManager rejects callers without a manager session. Role mismatch
// is reported the same as no session.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetSession(r.Context())
		if claims == nil || claims.Role != models.RoleManager {
			api.Error(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCustomer rejects callers without a customer session linked to a
// customer record.
func RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetSession(r.Context())
		if claims == nil || claims.Role != models.RoleCustomer || claims.CustomerID == "" {
			api.Error(w, http.StatusUnauthorized, "Customer authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

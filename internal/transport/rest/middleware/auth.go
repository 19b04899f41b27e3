package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"spicysweet/internal/service"
)

type contextKey string

const playerIDKey contextKey = "playerID"

// AuthMiddleware validates player tokens on session routes.
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequirePlayer checks a Bearer token bound to the route's session code
// and stashes the player id in the request context. It authenticates
// identity only; whether the player may perform the action is decided
// inside the store transaction.
func (m *AuthMiddleware) RequirePlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidatePlayerToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		if code := mux.Vars(r)["code"]; code != "" && claims.SessionCode != code {
			http.Error(w, "token not valid for this session", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), playerIDKey, claims.PlayerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PlayerID extracts the authenticated player id from a request context.
func PlayerID(r *http.Request) string {
	id, _ := r.Context().Value(playerIDKey).(string)
	return id
}

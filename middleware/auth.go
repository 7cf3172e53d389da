package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"nfl-pickem-go/interfaces"
	"nfl-pickem-go/logging"
	"nfl-pickem-go/services"
)

// AdminContextKey is the key used to store admin claims in request context
type AdminContextKey string

const AdminKey AdminContextKey = "admin"

// AuthCookieName is the cookie an admin token may also be sent in
const AuthCookieName = "auth_token"

// AuthMiddleware handles admin JWT authentication
type AuthMiddleware struct {
	authService interfaces.AuthService
	logger      *logging.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService interfaces.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logging.WithPrefix("Auth"),
	}
}

// RequireAdmin rejects requests without a valid admin token with 401
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			unauthorized(w)
			return
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			m.logger.Warnf("Rejected admin token from %s: %v", r.RemoteAddr, err)
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), AdminKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest reads a Bearer token from the Authorization header, falling back to the auth cookie
func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := r.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}

// GetAdminFromContext retrieves the admin claims from request context
func GetAdminFromContext(r *http.Request) *services.AdminClaims {
	if claims, ok := r.Context().Value(AdminKey).(*services.AdminClaims); ok {
		return claims
	}
	return nil
}

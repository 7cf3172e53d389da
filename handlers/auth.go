package handlers

import (
	"net/http"
	"time"

	"nfl-pickem-go/interfaces"
	"nfl-pickem-go/logging"
	"nfl-pickem-go/middleware"
	"nfl-pickem-go/models"
)

// AuthHandler handles admin login
type AuthHandler struct {
	authService  interfaces.AuthService
	secureCookie bool
	logger       *logging.Logger
}

// NewAuthHandler creates a new auth handler. secureCookie should be false only
// when serving plain HTTP.
func NewAuthHandler(authService interfaces.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
		logger:       logging.WithPrefix("AuthHandler"),
	}
}

// Login handles POST /api/auth/login. The token is returned in the body and set as a cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	resp, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		h.logger.Warnf("Login failed for %q from %s", req.Username, r.RemoteAddr)
		writeServiceError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	h.logger.Infof("Admin %s logged in", resp.Username)
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout by clearing the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

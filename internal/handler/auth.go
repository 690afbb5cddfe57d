package handler

import (
	"errors"
	"net/http"

	"github.com/mhalden/closet/internal/domain"
	"github.com/mhalden/closet/internal/service"
)

// AuthHandler exchanges the shared access password for an API token.
type AuthHandler struct {
	auth    *service.AuthService
	limiter *service.TokenBucket
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, limiter *service.TokenBucket) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

// HandleLogin verifies the access password and returns a bearer token.
// POST /api/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.Login(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "invalid password")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/TaskTracker/internal/models"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user and returns it with a signed token.
	// Returns models.ErrUsernameTaken when the username is already registered.
	Register(ctx context.Context, username, password string) (*models.User, string, error)
	// Login verifies credentials and returns the user with a signed token.
	// Returns models.ErrInvalidCredentials on any credential failure.
	Login(ctx context.Context, username, password string) (*models.User, string, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Log records server-side failure detail.
	Log *zap.Logger
}

// authResponse is the JSON body returned on successful registration or login.
type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles POST /api/register.
// It validates the credentials payload, creates the user with the default
// role, and responds 201 with a signed token. A duplicate username yields 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fe := req.validate(); len(fe) > 0 {
		writeValidationError(w, fe)
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login handles POST /api/login.
// It validates the payload and responds 200 with a signed token, or 401
// when the credentials do not match.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fe := req.validate(); len(fe) > 0 {
		writeValidationError(w, fe)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

package handler

import (
	"net/http"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
)

// sessionRotator reissues the session ID after a privilege change
type sessionRotator interface {
	Rotate(w http.ResponseWriter, r *http.Request, state *domain.SessionState) error
}

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService domain.AuthService
	sessions    sessionRotator
	logger      domain.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService domain.AuthService, sessions sessionRotator, logger domain.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// SignUp registers an account and sends the browser to the login page
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req signUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	if err := h.authService.SignUp(r.Context(), req.Email, req.Password, req.DisplayName); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	state.Page = domain.PageLogin
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Sign up successful. Please log in.",
		"session": state.Snapshot(),
	})
}

// Login authenticates the user for this browser session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	if err := h.authService.Login(r.Context(), state, req.Email, req.Password); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	// The pre-login session ID must not stay valid for the logged-in user.
	if err := h.sessions.Rotate(w, r, state); err != nil {
		h.logger.Error("Failed to rotate session", err)
		writeError(w, http.StatusInternalServerError, apperrors.ErrorTypeInternal, "Failed to start session")
		return
	}

	writeJSON(w, http.StatusOK, state.Snapshot())
}

// Logout clears the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	h.authService.Logout(r.Context(), state)
	writeJSON(w, http.StatusOK, state.Snapshot())
}

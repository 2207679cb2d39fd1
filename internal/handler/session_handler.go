package handler

import (
	"net/http"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
)

// SessionHandler exposes the typed session state to the browser
type SessionHandler struct {
	logger domain.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(logger domain.Logger) *SessionHandler {
	return &SessionHandler{logger: logger}
}

// GetSession returns the client-visible session snapshot
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, state.Snapshot())
}

// SetPage navigates to another page. Pages other than home, login and signup
// need a logged-in user.
func (h *SessionHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req pageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	page, valid := domain.ParsePage(req.Page)
	if !valid {
		writeAppError(w, h.logger, apperrors.NewValidationError("Unknown page", req.Page))
		return
	}
	if (page == domain.PageChat || page == domain.PageNotes) && !state.LoggedIn() {
		writeError(w, http.StatusUnauthorized, apperrors.ErrorTypeUnauthorized, "Please log in first.")
		return
	}

	state.Page = page
	writeJSON(w, http.StatusOK, state.Snapshot())
}

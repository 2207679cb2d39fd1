package handler

import (
	"context"
	"net/http"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
)

// SessionMiddleware attaches the browser session to every request
type SessionMiddleware struct {
	store   domain.SessionStore
	cookies *SessionCookies
	auth    domain.AuthService
	logger  domain.Logger
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(store domain.SessionStore, cookies *SessionCookies, auth domain.AuthService, logger domain.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		store:   store,
		cookies: cookies,
		auth:    auth,
		logger:  logger,
	}
}

// Middleware resolves or creates the session and holds its lock until the
// handler returns, so actions of one session run one at a time.
func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, err := m.resolve(w, r)
		if err != nil {
			m.logger.Error("Failed to write session cookie", err)
			writeError(w, http.StatusInternalServerError, apperrors.ErrorTypeInternal, "Failed to start session")
			return
		}

		state.Lock()
		defer state.Unlock()
		defer m.store.Touch(state)

		ctx := context.WithValue(r.Context(), sessionContextKey, state)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionMiddleware) resolve(w http.ResponseWriter, r *http.Request) (*domain.SessionState, error) {
	if id, ok := m.cookies.Read(r); ok {
		if state, found := m.store.Get(id); found {
			return state, nil
		}
	}

	state := m.store.Create()
	if err := m.cookies.Write(w, r, state.ID); err != nil {
		m.store.Delete(state.ID)
		return nil, err
	}
	m.logger.Debug("Session started", "session", state.ID)
	return state, nil
}

// Rotate moves the session under a new ID and reissues the cookie. A session
// whose cookie cannot be written is logged out.
func (m *SessionMiddleware) Rotate(w http.ResponseWriter, r *http.Request, state *domain.SessionState) error {
	m.store.Rotate(state)
	if err := m.cookies.Write(w, r, state.ID); err != nil {
		state.Reset()
		return err
	}
	return nil
}

// RequireLogin rejects requests whose session has no logged-in user and
// renews the user's access token before it expires.
func (m *SessionMiddleware) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, ok := GetSessionFromContext(r)
		if !ok || !state.LoggedIn() {
			writeError(w, http.StatusUnauthorized, apperrors.ErrorTypeUnauthorized, "Please log in first.")
			return
		}
		if err := m.auth.EnsureFresh(r.Context(), state); err != nil {
			writeAppError(w, m.logger, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

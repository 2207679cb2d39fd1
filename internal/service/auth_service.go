package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
)

// tokenRefreshSkew renews access tokens this long before they expire.
const tokenRefreshSkew = time.Minute

type authService struct {
	backend domain.AuthBackend
	logger  domain.Logger

	now func() time.Time
}

// NewAuthService creates the sign-up/login/logout service
func NewAuthService(backend domain.AuthBackend, logger domain.Logger) *authService {
	return &authService{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// SignUp registers an account. The session is not logged in afterwards.
func (s *authService) SignUp(ctx context.Context, email, password, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return apperrors.NewValidationError("Display name cannot be empty.")
	}

	if err := s.backend.SignUp(strings.TrimSpace(email), password, displayName); err != nil {
		s.logger.Error("Sign up failed", err, "display_name", displayName)
		if errors.Is(err, domain.ErrNotConfigured) {
			return authError("Sign up failed", err)
		}
		return apperrors.NewValidationError("Sign up failed.", err.Error())
	}

	s.logger.Info("User signed up", "display_name", displayName)
	return nil
}

// Login authenticates against the identity backend and attaches the user to state.
func (s *authService) Login(ctx context.Context, state *domain.SessionState, email, password string) error {
	session, err := s.backend.SignIn(strings.TrimSpace(email), password)
	if err != nil {
		s.logger.Warn("Login failed", "error", err)
		if errors.Is(err, domain.ErrNotConfigured) {
			return authError("Login failed", err)
		}
		return apperrors.NewUnauthorizedError("Invalid email or password.")
	}

	state.Reset()
	state.Login(*session)

	s.logger.Info("User logged in", "username", state.Username, "session", state.ID)
	return nil
}

// Logout revokes the token best-effort and clears the session.
func (s *authService) Logout(ctx context.Context, state *domain.SessionState) {
	if state.AccessToken != "" {
		if err := s.backend.SignOut(state.AccessToken); err != nil {
			s.logger.Warn("Backend logout failed", "username", state.Username, "error", err)
		}
	}
	s.logger.Info("User logged out", "username", state.Username, "session", state.ID)
	state.Reset()
}

// EnsureFresh renews the access token shortly before it expires. A refused
// refresh logs the session out so the user is asked to log in again.
func (s *authService) EnsureFresh(ctx context.Context, state *domain.SessionState) error {
	if err := requireLogin(state); err != nil {
		return err
	}
	if !state.TokenExpiring(s.now(), tokenRefreshSkew) {
		return nil
	}

	if state.RefreshToken != "" {
		session, err := s.backend.Refresh(state.RefreshToken)
		if err == nil {
			state.RenewTokens(*session)
			s.logger.Debug("Access token refreshed", "username", state.Username, "session", state.ID)
			return nil
		}
		if errors.Is(err, domain.ErrNotConfigured) {
			return authError("Token refresh failed", err)
		}
		s.logger.Warn("Token refresh failed", "username", state.Username, "error", err)
	}

	s.logger.Info("Session expired", "username", state.Username, "session", state.ID)
	state.Reset()
	state.Page = domain.PageLogin
	return apperrors.NewUnauthorizedError("Your session has expired. Please log in again.")
}

func authError(message string, err error) error {
	if errors.Is(err, domain.ErrNotConfigured) {
		return apperrors.NewNotConfiguredError("Authentication backend not configured")
	}
	return apperrors.NewRetrievalError(message, err)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
	"ai-tutoring-system/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aliceSession() *domain.AuthSession {
	return &domain.AuthSession{
		AccessToken:  "tok-alice",
		RefreshToken: "refresh-alice",
		ExpiresAt:    time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC),
		User: domain.SupabaseUser{
			ID:           "u-1",
			Email:        "alice@example.com",
			UserMetadata: map[string]interface{}{domain.DisplayNameKey: "alice"},
		},
	}
}

func TestAuthService_LoginAndLogout(t *testing.T) {
	backend := &fakeAuthBackend{session: aliceSession()}
	svc := NewAuthService(backend, logger.NewNop())

	state := domain.NewSessionState("sess-1")
	state.Page = domain.PageLogin

	require.NoError(t, svc.Login(context.Background(), state, " alice@example.com ", "secret"))
	assert.Equal(t, "alice", state.Username)
	assert.Equal(t, "tok-alice", state.AccessToken)
	assert.Equal(t, "refresh-alice", state.RefreshToken)
	assert.Equal(t, domain.PageHome, state.Page)

	state.SelectedChat = "Bio"
	svc.Logout(context.Background(), state)
	assert.Equal(t, []string{"tok-alice"}, backend.signedOut)
	assert.False(t, state.LoggedIn())
	assert.Empty(t, state.SelectedChat)
	assert.Equal(t, "sess-1", state.ID)
}

func TestAuthService_LoginFailure(t *testing.T) {
	svc := NewAuthService(&fakeAuthBackend{signInErr: errors.New("invalid_grant")}, logger.NewNop())
	state := domain.NewSessionState("sess-1")

	err := svc.Login(context.Background(), state, "alice@example.com", "wrong")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	assert.False(t, state.LoggedIn())
}

func TestAuthService_NotConfigured(t *testing.T) {
	notConfigured := fmt.Errorf("supabase client not initialized: %w", domain.ErrNotConfigured)
	svc := NewAuthService(&fakeAuthBackend{signInErr: notConfigured, signUpErr: notConfigured}, logger.NewNop())

	err := svc.Login(context.Background(), domain.NewSessionState("s"), "a@example.com", "pw")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotConfigured))

	err = svc.SignUp(context.Background(), "a@example.com", "pw", "alice")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotConfigured))
}

func TestAuthService_SignUp(t *testing.T) {
	backend := &fakeAuthBackend{}
	svc := NewAuthService(backend, logger.NewNop())

	require.NoError(t, svc.SignUp(context.Background(), "alice@example.com", "secret", " alice "))
	assert.Equal(t, []string{"alice"}, backend.signedUp)

	err := svc.SignUp(context.Background(), "alice@example.com", "secret", "  ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	backend.signUpErr = errors.New("User already registered")
	err = svc.SignUp(context.Background(), "alice@example.com", "secret", "alice")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func expiringState(svc *authService, now time.Time) *domain.SessionState {
	svc.now = func() time.Time { return now }
	state := loggedInState()
	state.AccessToken = "tok-old"
	state.RefreshToken = "refresh-old"
	state.TokenExpiresAt = now.Add(30 * time.Second)
	return state
}

func TestAuthService_EnsureFresh_KeepsValidToken(t *testing.T) {
	backend := &fakeAuthBackend{}
	svc := NewAuthService(backend, logger.NewNop())
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	state := expiringState(svc, now)
	state.TokenExpiresAt = now.Add(time.Hour)

	require.NoError(t, svc.EnsureFresh(context.Background(), state))
	assert.Empty(t, backend.refreshes)
	assert.Equal(t, "tok-old", state.AccessToken)
}

func TestAuthService_EnsureFresh_RenewsExpiringToken(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	backend := &fakeAuthBackend{refreshed: map[string]*domain.AuthSession{
		"refresh-old": {AccessToken: "tok-new", RefreshToken: "refresh-new", ExpiresAt: now.Add(time.Hour)},
	}}
	svc := NewAuthService(backend, logger.NewNop())
	state := expiringState(svc, now)

	require.NoError(t, svc.EnsureFresh(context.Background(), state))
	assert.Equal(t, []string{"refresh-old"}, backend.refreshes)
	assert.Equal(t, "tok-new", state.AccessToken)
	assert.Equal(t, "refresh-new", state.RefreshToken)
	assert.Equal(t, "alice", state.Username)
	assert.Equal(t, "Bio", state.SelectedChat)
}

func TestAuthService_EnsureFresh_RejectedRefreshLogsOut(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	backend := &fakeAuthBackend{refreshed: map[string]*domain.AuthSession{}}
	svc := NewAuthService(backend, logger.NewNop())
	state := expiringState(svc, now)

	err := svc.EnsureFresh(context.Background(), state)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	assert.Equal(t, []string{"refresh-old"}, backend.refreshes)
	assert.False(t, state.LoggedIn())
	assert.Empty(t, state.AccessToken)
	assert.Empty(t, state.SelectedChat)
	assert.Equal(t, domain.PageLogin, state.Page)
}

func TestAuthService_EnsureFresh_NotConfigured(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	backend := &fakeAuthBackend{refreshErr: fmt.Errorf("supabase client not initialized: %w", domain.ErrNotConfigured)}
	svc := NewAuthService(backend, logger.NewNop())
	state := expiringState(svc, now)

	err := svc.EnsureFresh(context.Background(), state)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotConfigured))
	assert.True(t, state.LoggedIn())
}

func TestAuthService_EnsureFresh_RequiresLogin(t *testing.T) {
	svc := NewAuthService(&fakeAuthBackend{}, logger.NewNop())

	err := svc.EnsureFresh(context.Background(), domain.NewSessionState("s"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

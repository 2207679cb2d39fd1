package supabase

import (
	"fmt"
	"time"

	"ai-tutoring-system/internal/domain"

	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
)

var errNotInitialized = fmt.Errorf("supabase client not initialized: %w", domain.ErrNotConfigured)

// SupabaseClient implements domain.SupabaseClient and domain.AuthBackend
type SupabaseClient struct {
	client *supabase.Client
	config domain.Config
	logger domain.Logger
}

// NewSupabaseClient creates a new Supabase client instance
func NewSupabaseClient(config domain.Config, logger domain.Logger) *SupabaseClient {
	return &SupabaseClient{
		config: config,
		logger: logger,
	}
}

// Initialize establishes a connection to Supabase
func (s *SupabaseClient) Initialize() error {
	supabaseURL := s.config.GetSupabaseURL()
	supabaseKey := s.config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized successfully", "url", supabaseURL)
	return nil
}

// GetClientWithToken returns a client whose table and storage requests carry
// the user's access token, so row-level and bucket policies apply.
func (s *SupabaseClient) GetClientWithToken(token string) (*supabase.Client, error) {
	if s.client == nil {
		return nil, errNotInitialized
	}
	if token == "" {
		return s.client, nil
	}

	client, err := supabase.NewClient(s.config.GetSupabaseURL(), s.config.GetSupabaseKey(), &supabase.ClientOptions{
		Headers: map[string]string{"Authorization": "Bearer " + token},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client with token: %w", err)
	}
	return client, nil
}

// SignUp registers a new account with the display name in user metadata
func (s *SupabaseClient) SignUp(email, password, displayName string) error {
	if s.client == nil {
		return errNotInitialized
	}

	_, err := s.client.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data:     map[string]interface{}{domain.DisplayNameKey: displayName},
	})
	if err != nil {
		return fmt.Errorf("sign up failed: %w", err)
	}
	return nil
}

// SignIn performs a password login. The shared client's auth state is left
// untouched; the returned token is scoped to one browser session.
func (s *SupabaseClient) SignIn(email, password string) (*domain.AuthSession, error) {
	if s.client == nil {
		return nil, errNotInitialized
	}

	resp, err := s.client.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp == nil || resp.AccessToken == "" {
		return nil, fmt.Errorf("login failed: empty session")
	}
	return toAuthSession(resp.Session), nil
}

// Refresh exchanges a refresh token for a new token pair. Like SignIn it
// leaves the shared client's auth state untouched.
func (s *SupabaseClient) Refresh(refreshToken string) (*domain.AuthSession, error) {
	if s.client == nil {
		return nil, errNotInitialized
	}

	resp, err := s.client.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	if resp == nil || resp.AccessToken == "" {
		return nil, fmt.Errorf("token refresh failed: empty session")
	}
	return toAuthSession(resp.Session), nil
}

// SignOut revokes the access token
func (s *SupabaseClient) SignOut(token string) error {
	if s.client == nil {
		return errNotInitialized
	}
	if err := s.client.Auth.WithToken(token).Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

func toAuthSession(session types.Session) *domain.AuthSession {
	var expiresAt time.Time
	switch {
	case session.ExpiresAt > 0:
		expiresAt = time.Unix(session.ExpiresAt, 0).UTC()
	case session.ExpiresIn > 0:
		expiresAt = time.Now().UTC().Add(time.Duration(session.ExpiresIn) * time.Second)
	}

	return &domain.AuthSession{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    expiresAt,
		User:         *toDomainUser(session.User),
	}
}

func toDomainUser(user types.User) *domain.SupabaseUser {
	return &domain.SupabaseUser{
		ID:           user.ID.String(),
		Email:        user.Email,
		UserMetadata: user.UserMetadata,
		CreatedAt:    user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

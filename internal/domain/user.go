package domain

import "time"

// SupabaseUser represents a user from Supabase Auth
type SupabaseUser struct {
	ID           string
	Email        string
	UserMetadata map[string]interface{}
	CreatedAt    string
	UpdatedAt    string
}

// DisplayName returns the metadata display name, falling back to the e-mail.
func (u *SupabaseUser) DisplayName() string {
	if u == nil {
		return ""
	}
	if name, ok := u.UserMetadata[DisplayNameKey].(string); ok && name != "" {
		return name
	}
	return u.Email
}

// DisplayNameKey is the user-metadata key holding the display name.
const DisplayNameKey = "display_name"

// AuthSession is the result of a successful password login.
type AuthSession struct {
	AccessToken  string
	RefreshToken string
	// ExpiresAt is when AccessToken stops being accepted; zero when unknown.
	ExpiresAt time.Time
	User      SupabaseUser
}

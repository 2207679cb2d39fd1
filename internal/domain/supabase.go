package domain

import "github.com/supabase-community/supabase-go"

// SupabaseClient hands out token-scoped clients for table and storage calls.
type SupabaseClient interface {
	Initialize() error
	GetClientWithToken(token string) (*supabase.Client, error)
}

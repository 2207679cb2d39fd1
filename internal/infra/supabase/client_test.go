package supabase_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"ai-tutoring-system/internal/config"
	"ai-tutoring-system/internal/infra/supabase"
	"ai-tutoring-system/pkg/logger"
)

func TestInitialize_RequiresURLAndKey(t *testing.T) {
	client := supabase.NewSupabaseClient(&config.AppConfig{}, logger.NewNop())

	err := client.Initialize()
	if err == nil || !strings.Contains(err.Error(), "must be provided") {
		t.Fatalf("expected missing settings error, got %v", err)
	}
	if _, err := client.GetClientWithToken(""); err == nil {
		t.Fatalf("expected client to stay uninitialized")
	}
}

func TestUninitializedClient_ReturnsErrors(t *testing.T) {
	client := supabase.NewSupabaseClient(&config.AppConfig{}, logger.NewNop())

	if _, err := client.GetClientWithToken("tok"); err == nil {
		t.Fatalf("expected error from GetClientWithToken")
	}
	if _, err := client.SignIn("a@example.com", "pw"); err == nil {
		t.Fatalf("expected error from SignIn")
	}
	if _, err := client.Refresh("refresh"); err == nil {
		t.Fatalf("expected error from Refresh")
	}
	if err := client.SignUp("a@example.com", "pw", "alice"); err == nil {
		t.Fatalf("expected error from SignUp")
	}
	if err := client.SignOut("tok"); err == nil {
		t.Fatalf("expected error from SignOut")
	}
}

// newAuthServer answers GoTrue token requests; refresh tokens other than
// validRefresh are rejected.
func newAuthServer(t *testing.T, validRefresh string, expiresAt int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/token") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		body := new(bytes.Buffer)
		if _, err := body.ReadFrom(r.Body); err != nil {
			t.Errorf("read body: %v", err)
		}
		if !strings.Contains(body.String(), validRefresh) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid Refresh Token"}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"access_token": "tok-2",
			"token_type": "bearer",
			"expires_in": 3600,
			"expires_at": ` + strconv.FormatInt(expiresAt, 10) + `,
			"refresh_token": "refresh-2",
			"user": {"id": "3f1d2c9e-5b7a-4c1e-9d3f-2a6b8c0e1f47", "email": "alice@example.com", "user_metadata": {"display_name": "alice"}}
		}`))
	}))
}

func TestRefresh_ExchangesRefreshToken(t *testing.T) {
	expiresAt := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC).Unix()
	srv := newAuthServer(t, "refresh-1", expiresAt)
	defer srv.Close()

	client := supabase.NewSupabaseClient(&config.AppConfig{SupabaseURL: srv.URL, SupabaseKey: "anon"}, logger.NewNop())
	if err := client.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	session, err := client.Refresh("refresh-1")
	if err != nil {
		t.Fatalf("expected refresh to succeed, got %v", err)
	}
	if session.AccessToken != "tok-2" || session.RefreshToken != "refresh-2" {
		t.Fatalf("unexpected tokens: %+v", session)
	}
	if !session.ExpiresAt.Equal(time.Unix(expiresAt, 0)) {
		t.Fatalf("expected expiry %v, got %v", time.Unix(expiresAt, 0).UTC(), session.ExpiresAt)
	}
	if session.User.DisplayName() != "alice" {
		t.Fatalf("expected display name alice, got %q", session.User.DisplayName())
	}

	if _, err := client.Refresh("revoked"); err == nil {
		t.Fatalf("expected rejected refresh token to fail")
	}
}

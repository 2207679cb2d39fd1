package handler

import (
	"net/http"

	"ai-tutoring-system/internal/domain"

	"github.com/gorilla/securecookie"
)

// SessionCookieName holds the signed browser session ID
const SessionCookieName = "tutor_session"

// SessionCookies signs (and, with a valid block key, encrypts) session IDs
type SessionCookies struct {
	codec *securecookie.SecureCookie
}

// NewSessionCookies creates the cookie codec. Block keys that are not a valid
// AES key size are dropped and cookies are only signed.
func NewSessionCookies(hashKey, blockKey []byte, logger domain.Logger) *SessionCookies {
	switch len(blockKey) {
	case 16, 24, 32:
	default:
		logger.Warn("SESSION_BLOCK_KEY must be 16, 24 or 32 bytes; session cookies will be signed only", "length", len(blockKey))
		blockKey = nil
	}
	return &SessionCookies{codec: securecookie.New(hashKey, blockKey)}
}

// Read returns the session ID carried by the request, if the cookie is valid
func (c *SessionCookies) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", false
	}
	var id string
	if err := c.codec.Decode(SessionCookieName, cookie.Value, &id); err != nil || id == "" {
		return "", false
	}
	return id, true
}

// Write sets the session cookie for id
func (c *SessionCookies) Write(w http.ResponseWriter, r *http.Request, id string) error {
	encoded, err := c.codec.Encode(SessionCookieName, id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

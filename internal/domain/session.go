package domain

import (
	"sync"
	"time"
)

// Page is the view the browser session is currently on.
type Page string

const (
	PageHome   Page = "home"
	PageLogin  Page = "login"
	PageSignup Page = "signup"
	PageChat   Page = "chat"
	PageNotes  Page = "notes"
)

// ParsePage validates a page name.
func ParsePage(s string) (Page, bool) {
	switch p := Page(s); p {
	case PageHome, PageLogin, PageSignup, PageChat, PageNotes:
		return p, true
	}
	return "", false
}

// CachedDocument is the single-slot document cache of a session.
type CachedDocument struct {
	Path    string
	Content DocumentContent
}

// SessionState is the server-side state of one browser session.
//
// Handlers hold the lock for the whole request so each user action runs to
// completion before the next one of the same session starts.
type SessionState struct {
	mu sync.Mutex

	ID string

	Username    string
	UserID      string
	AccessToken string

	RefreshToken   string
	TokenExpiresAt time.Time

	Page             Page
	SelectedChat     string
	CreatingChat     bool
	SelectedDocument string

	SelectedDocumentText *CachedDocument

	EnhancedNotes    string
	EnhancedNotesPDF []byte

	Messages Transcript
}

// NewSessionState returns a fresh, logged-out state on the home page.
func NewSessionState(id string) *SessionState {
	return &SessionState{ID: id, Page: PageHome, Messages: Transcript{}}
}

// Lock acquires the per-session lock.
func (s *SessionState) Lock() { s.mu.Lock() }

// Unlock releases the per-session lock.
func (s *SessionState) Unlock() { s.mu.Unlock() }

// LoggedIn reports whether a user is attached to the session.
func (s *SessionState) LoggedIn() bool {
	return s.Username != ""
}

// Login attaches the authenticated user and moves to the home page.
func (s *SessionState) Login(session AuthSession) {
	s.Username = session.User.DisplayName()
	s.UserID = session.User.ID
	s.RenewTokens(session)
	s.Page = PageHome
}

// RenewTokens replaces the backend tokens and keeps everything else.
func (s *SessionState) RenewTokens(session AuthSession) {
	s.AccessToken = session.AccessToken
	s.RefreshToken = session.RefreshToken
	s.TokenExpiresAt = session.ExpiresAt
}

// TokenExpiring reports whether the access token expires within skew of now.
// A session without a known expiry never expires here.
func (s *SessionState) TokenExpiring(now time.Time, skew time.Duration) bool {
	if s.TokenExpiresAt.IsZero() {
		return false
	}
	return !now.Add(skew).Before(s.TokenExpiresAt)
}

// Reset clears everything except the session ID.
func (s *SessionState) Reset() {
	s.Username = ""
	s.UserID = ""
	s.AccessToken = ""
	s.RefreshToken = ""
	s.TokenExpiresAt = time.Time{}
	s.Page = PageHome
	s.SelectedChat = ""
	s.CreatingChat = false
	s.ClearDocument()
	s.Messages = Transcript{}
}

// SelectChat switches the active chat session and drops chat-scoped state.
func (s *SessionState) SelectChat(name string) {
	s.SelectedChat = name
	s.CreatingChat = false
	s.ClearDocument()
	s.Messages = Transcript{}
}

// SelectDocument switches the active document and invalidates the cache slot.
func (s *SessionState) SelectDocument(filename string) {
	s.ClearDocument()
	s.SelectedDocument = filename
}

// ClearDocument drops the selection, the cache slot and any enhanced notes.
func (s *SessionState) ClearDocument() {
	s.SelectedDocument = ""
	s.SelectedDocumentText = nil
	s.EnhancedNotes = ""
	s.EnhancedNotesPDF = nil
}

// SessionSnapshot is the client-visible view of a session.
type SessionSnapshot struct {
	Username         string     `json:"username"`
	Page             Page       `json:"page"`
	SelectedChat     string     `json:"selected_chat"`
	CreatingChat     bool       `json:"creating_chat"`
	SelectedDocument string     `json:"selected_document"`
	HasEnhancedNotes bool       `json:"has_enhanced_notes"`
	EnhancedNotes    string     `json:"enhanced_notes,omitempty"`
	Messages         Transcript `json:"messages"`
}

// Snapshot copies the client-visible fields.
func (s *SessionState) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		Username:         s.Username,
		Page:             s.Page,
		SelectedChat:     s.SelectedChat,
		CreatingChat:     s.CreatingChat,
		SelectedDocument: s.SelectedDocument,
		HasEnhancedNotes: len(s.EnhancedNotesPDF) > 0,
		EnhancedNotes:    s.EnhancedNotes,
		Messages:         s.Messages.Clone(),
	}
}

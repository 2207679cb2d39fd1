package domain

import (
	"context"
	"io"
	"time"
)

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFile() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetStorageBucket() string
	GetChatHistoryTable() string
	GetGCPProjectID() string
	GetGCPLocation() string
	GetGCPCredentialsFile() string
	GetGeminiModel() string
	GetSessionTTL() time.Duration
	GetSessionHashKey() []byte
	GetSessionBlockKey() []byte
	GetAllowedOrigins() []string
	GetPDFTextEngine() string
	GetNotesFontFile() string
}

// RecordStore is the tabular chat-history backend.
type RecordStore interface {
	// ListChatHistories returns the owner's rows ordered by creation time.
	ListChatHistories(ctx context.Context, owner string, token string) ([]ChatHistory, error)
	// LatestChatHistoryID returns the highest stored ID, or "" when the table is empty.
	LatestChatHistoryID(ctx context.Context, token string) (string, error)
	InsertChatHistory(ctx context.Context, record *ChatHistory, token string) error
}

// BlobStore is the path-addressed object backend.
type BlobStore interface {
	Upload(ctx context.Context, path string, data io.Reader, contentType string, token string) error
	List(ctx context.Context, prefix string, token string) ([]StoredObject, error)
	Remove(ctx context.Context, paths []string, token string) error
	Download(ctx context.Context, path string, token string) ([]byte, error)
}

// TextGenerator is the hosted language-model completion service.
type TextGenerator interface {
	// Generate runs a single-turn request with no history attached.
	Generate(ctx context.Context, prompt string) (string, error)
	// Chat sends message against the ordered prior turns and returns the reply.
	Chat(ctx context.Context, history []ConversationTurn, message string) (string, error)
}

// SessionStore holds one SessionState per browser session.
type SessionStore interface {
	Create() *SessionState
	Get(sessionID string) (*SessionState, bool)
	Touch(state *SessionState)
	Delete(sessionID string)
	// Rotate moves state under a fresh ID and forgets the old one.
	Rotate(state *SessionState)
}

// PDFTextEngine extracts the text of each page of a PDF byte stream, in page order.
type PDFTextEngine interface {
	Name() string
	PageTexts(pdfBytes []byte) ([]string, error)
}

// AuthBackend is the identity provider used for sign-up, login and logout.
type AuthBackend interface {
	SignUp(email, password, displayName string) error
	SignIn(email, password string) (*AuthSession, error)
	SignOut(token string) error
	Refresh(refreshToken string) (*AuthSession, error)
}

package domain

import "context"

// AuthService signs users up, in and out of a browser session.
type AuthService interface {
	SignUp(ctx context.Context, email, password, displayName string) error
	Login(ctx context.Context, state *SessionState, email, password string) error
	Logout(ctx context.Context, state *SessionState)
	// EnsureFresh renews an expiring access token, or logs the session out
	// when the backend refuses the refresh.
	EnsureFresh(ctx context.Context, state *SessionState) error
}

// ChatHistoryService manages the named chat sessions of a user.
type ChatHistoryService interface {
	List(ctx context.Context, state *SessionState) ([]ChatHistory, error)
	StartNew(state *SessionState)
	Create(ctx context.Context, state *SessionState, name string) (*ChatHistory, error)
	Select(ctx context.Context, state *SessionState, name string) error
}

// DocumentService manages the uploaded documents of the selected chat.
type DocumentService interface {
	List(ctx context.Context, state *SessionState) ([]StoredObject, error)
	Upload(ctx context.Context, state *SessionState, filename string, data []byte) (*StoredObject, error)
	Delete(ctx context.Context, state *SessionState, filename string) error
	Select(ctx context.Context, state *SessionState, filename string) error
}

// NotesService runs the note enhancement pipeline for the selected document.
type NotesService interface {
	Preview(ctx context.Context, state *SessionState) (string, error)
	Enhance(ctx context.Context, state *SessionState, instruction string) (string, error)
	EnhancedPDF(state *SessionState) ([]byte, error)
}

// ConversationService round-trips the chat transcript through the text generator.
type ConversationService interface {
	Converse(ctx context.Context, transcript Transcript, message string) (string, Transcript, error)
	Send(ctx context.Context, state *SessionState, message string) (string, error)
	Clear(state *SessionState)
}

package domain

import "errors"

// Domain errors
var (
	ErrNoSessionSelected  = errors.New("no chat session selected")
	ErrNoDocumentSelected = errors.New("no document selected")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrChatNotFound       = errors.New("chat history not found")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrEmptyGeneration    = errors.New("empty response from model")
	ErrNoEnhancedNotes    = errors.New("no enhanced notes in session")
	ErrInvalidChatID      = errors.New("invalid chat history id")
	ErrInvalidFile        = errors.New("invalid file")
	ErrNotConfigured      = errors.New("service not configured")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ChatHistory is one row of the chat-history table.
type ChatHistory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Owner     string    `json:"displayname"`
}

const chatIDPrefix = "ID"

// FirstChatID is assigned when the table is empty.
const FirstChatID = "ID0001"

// ParseChatID returns the numeric part of an "ID0042"-style identifier.
func ParseChatID(id string) (int, error) {
	if !strings.HasPrefix(id, chatIDPrefix) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChatID, id)
	}
	n, err := strconv.Atoi(id[len(chatIDPrefix):])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChatID, id)
	}
	return n, nil
}

// FormatChatID renders n as ID followed by at least four digits.
func FormatChatID(n int) string {
	return fmt.Sprintf("%s%04d", chatIDPrefix, n)
}

// NextChatID returns the identifier following latest; "" yields FirstChatID.
func NextChatID(latest string) (string, error) {
	if latest == "" {
		return FirstChatID, nil
	}
	n, err := ParseChatID(latest)
	if err != nil {
		return "", err
	}
	return FormatChatID(n + 1), nil
}

// Role of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message of a transcript.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered, append-only message history of one chat session.
type Transcript []ConversationTurn

// Len returns the number of turns.
func (t Transcript) Len() int { return len(t) }

// WithExchange returns a new transcript with the user message and reply appended.
// The receiver is never modified.
func (t Transcript) WithExchange(message, reply string) Transcript {
	next := make(Transcript, 0, len(t)+2)
	next = append(next, t...)
	next = append(next,
		ConversationTurn{Role: RoleUser, Content: message},
		ConversationTurn{Role: RoleAssistant, Content: reply},
	)
	return next
}

// Clone returns an independent copy.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return Transcript{}
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

package service

import (
	"context"
	"strings"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
)

const maxMessageLength = 4000

type conversationService struct {
	generator domain.TextGenerator
	logger    domain.Logger
}

// NewConversationService creates the tutor chat service
func NewConversationService(generator domain.TextGenerator, logger domain.Logger) *conversationService {
	return &conversationService{
		generator: generator,
		logger:    logger,
	}
}

// Converse sends message against transcript and returns the reply with the
// extended transcript. On failure the input transcript is returned untouched.
func (s *conversationService) Converse(ctx context.Context, transcript domain.Transcript, message string) (string, domain.Transcript, error) {
	if s.generator == nil {
		return "", transcript, apperrors.NewNotConfiguredError("Text generation service not configured")
	}

	reply, err := s.generator.Chat(ctx, transcript.Clone(), message)
	if err != nil {
		s.logger.Error("Chat generation failed", err, "turns", transcript.Len())
		return "", transcript, apperrors.NewGenerationError("Error generating response", err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", transcript, apperrors.NewGenerationError("Error generating response", domain.ErrEmptyGeneration)
	}

	return reply, transcript.WithExchange(message, reply), nil
}

// Send runs one chat turn for the session's transcript
func (s *conversationService) Send(ctx context.Context, state *domain.SessionState, message string) (string, error) {
	if err := requireChat(state); err != nil {
		return "", err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperrors.NewValidationError("Message cannot be empty.")
	}
	if len(message) > maxMessageLength {
		return "", apperrors.NewValidationError("Message too long.", "maximum length is 4000 characters")
	}

	reply, updated, err := s.Converse(ctx, state.Messages, message)
	if err != nil {
		return "", err
	}

	state.Messages = updated
	return reply, nil
}

// Clear empties the session transcript
func (s *conversationService) Clear(state *domain.SessionState) {
	state.Messages = domain.Transcript{}
}

package service

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
)

const maxChatNameLength = 100

type chatHistoryService struct {
	records domain.RecordStore
	blobs   domain.BlobStore
	logger  domain.Logger

	// allocMu serialises read-max-ID + insert within this process. Two
	// processes sharing the table can still allocate the same ID.
	allocMu sync.Mutex

	now func() time.Time
}

// NewChatHistoryService creates the chat session service
func NewChatHistoryService(records domain.RecordStore, blobs domain.BlobStore, logger domain.Logger) *chatHistoryService {
	return &chatHistoryService{
		records: records,
		blobs:   blobs,
		logger:  logger,
		now:     time.Now,
	}
}

// List returns the user's chats, oldest first
func (s *chatHistoryService) List(ctx context.Context, state *domain.SessionState) ([]domain.ChatHistory, error) {
	if err := requireLogin(state); err != nil {
		return nil, err
	}

	histories, err := s.records.ListChatHistories(ctx, state.Username, state.AccessToken)
	if err != nil {
		s.logger.Error("Failed to list chat histories", err, "owner", state.Username)
		return nil, storeError("Error fetching chat histories", err)
	}
	return histories, nil
}

// StartNew switches the dropdown to "create new chat"
func (s *chatHistoryService) StartNew(state *domain.SessionState) {
	state.CreatingChat = true
}

// Create saves a new chat history row and selects it. Nothing is selected
// unless the insert succeeded.
func (s *chatHistoryService) Create(ctx context.Context, state *domain.SessionState, name string) (*domain.ChatHistory, error) {
	if err := requireLogin(state); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("Chat name cannot be empty.")
	}
	if len(name) > maxChatNameLength || strings.ContainsAny(name, "/\\") {
		return nil, apperrors.NewValidationError("Invalid chat name.", "names are at most 100 characters and cannot contain slashes")
	}

	if err := s.ensureOwnerFolder(ctx, state); err != nil {
		return nil, err
	}

	record, err := s.insertWithNextID(ctx, state, name)
	if err != nil {
		return nil, err
	}

	state.SelectChat(record.Name)
	return record, nil
}

func (s *chatHistoryService) ensureOwnerFolder(ctx context.Context, state *domain.SessionState) error {
	path := domain.OwnerPlaceholderPath(state.Username)
	if err := s.blobs.Upload(ctx, path, bytes.NewReader(domain.PlaceholderContent), "text/plain", state.AccessToken); err != nil {
		s.logger.Error("Failed to create owner folder", err, "owner", state.Username)
		return storeError("Error creating folder", err)
	}
	return nil
}

func (s *chatHistoryService) insertWithNextID(ctx context.Context, state *domain.SessionState, name string) (*domain.ChatHistory, error) {
	s.allocMu.Lock()
	defer s.allocMu.Unlock()

	latest, err := s.records.LatestChatHistoryID(ctx, state.AccessToken)
	if err != nil {
		s.logger.Error("Failed to read latest chat history id", err)
		return nil, storeError("Error saving chat history", err)
	}

	id, err := domain.NextChatID(latest)
	if err != nil {
		return nil, apperrors.NewInternalError("Error saving chat history", err)
	}

	record := &domain.ChatHistory{
		ID:        id,
		Name:      name,
		CreatedAt: s.now().UTC(),
		Owner:     state.Username,
	}
	if err := s.records.InsertChatHistory(ctx, record, state.AccessToken); err != nil {
		s.logger.Error("Failed to insert chat history", err, "owner", state.Username, "chat", name)
		return nil, storeError("Error saving chat history", err)
	}
	return record, nil
}

// Select switches to one of the user's existing chats
func (s *chatHistoryService) Select(ctx context.Context, state *domain.SessionState, name string) error {
	histories, err := s.List(ctx, state)
	if err != nil {
		return err
	}

	for _, h := range histories {
		if h.Name == name {
			state.SelectChat(h.Name)
			s.logger.Debug("Chat selected", "owner", state.Username, "chat", name)
			return nil
		}
	}
	return apperrors.NewNotFoundError("Chat not found")
}

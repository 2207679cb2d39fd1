package service

import (
	"errors"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
)

// storeError classifies a Record Store or Blob Store failure.
func storeError(message string, err error) error {
	if errors.Is(err, domain.ErrNotConfigured) {
		return apperrors.NewNotConfiguredError("Storage backend not configured")
	}
	return apperrors.NewRetrievalError(message, err)
}

// requireLogin guards operations that act on behalf of a user.
func requireLogin(state *domain.SessionState) error {
	if !state.LoggedIn() {
		return apperrors.NewUnauthorizedError("Please log in first.")
	}
	return nil
}

// requireChat guards operations scoped to the selected chat session.
func requireChat(state *domain.SessionState) error {
	if err := requireLogin(state); err != nil {
		return err
	}
	if state.SelectedChat == "" {
		return apperrors.NewNoSessionSelectedError(domain.ErrNoSessionSelected)
	}
	return nil
}

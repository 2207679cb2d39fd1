package handler

import (
	"net/http"

	"ai-tutoring-system/internal/domain"
)

// ConversationHandler handles the tutor chat box
type ConversationHandler struct {
	conversationService domain.ConversationService
	logger              domain.Logger
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversationService domain.ConversationService, logger domain.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationService,
		logger:              logger,
	}
}

type messageResponse struct {
	Reply    string            `json:"reply"`
	Messages domain.Transcript `json:"messages"`
}

// SendMessage sends one user message and returns the reply with the transcript
func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req messageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	reply, err := h.conversationService.Send(r.Context(), state, req.Message)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Reply: reply, Messages: state.Messages.Clone()})
}

// GetMessages returns the transcript of the selected chat
func (h *ConversationHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": state.Messages.Clone()})
}

// ClearMessages empties the transcript
func (h *ConversationHandler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	h.conversationService.Clear(state)
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": state.Messages.Clone()})
}

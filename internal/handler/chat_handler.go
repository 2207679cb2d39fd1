package handler

import (
	"net/http"

	"ai-tutoring-system/internal/domain"
)

// ChatHandler handles the chat session dropdown
type ChatHandler struct {
	chatService domain.ChatHistoryService
	logger      domain.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService domain.ChatHistoryService, logger domain.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

type chatListResponse struct {
	Chats        []domain.ChatHistory `json:"chats"`
	SelectedChat string               `json:"selected_chat"`
	CreatingChat bool                 `json:"creating_chat"`
}

// ListChats returns the user's chats and the dropdown state
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	chats, err := h.chatService.List(r.Context(), state)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	if chats == nil {
		chats = make([]domain.ChatHistory, 0)
	}

	writeJSON(w, http.StatusOK, chatListResponse{
		Chats:        chats,
		SelectedChat: state.SelectedChat,
		CreatingChat: state.CreatingChat,
	})
}

// NewChat selects the "create new chat" dropdown entry
func (h *ChatHandler) NewChat(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	h.chatService.StartNew(state)
	writeJSON(w, http.StatusOK, state.Snapshot())
}

// CreateChat saves a new chat history and selects it
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req chatNameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	chat, err := h.chatService.Create(r.Context(), state, req.Name)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, chat)
}

// SelectChat switches to an existing chat
func (h *ChatHandler) SelectChat(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req chatNameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	if err := h.chatService.Select(r.Context(), state, req.Name); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, state.Snapshot())
}

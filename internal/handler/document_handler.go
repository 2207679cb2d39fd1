// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"io"
	"net/http"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"

	"github.com/gorilla/mux"
)

// multipartOverhead leaves room for form boundaries and headers
const multipartOverhead = 1 << 20

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	documentService domain.DocumentService
	maxFileSize     int64
	logger          domain.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService domain.DocumentService, maxFileSize int64, logger domain.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

type documentListResponse struct {
	Documents        []domain.StoredObject `json:"documents"`
	SelectedDocument string                `json:"selected_document"`
}

// ListDocuments returns the documents of the selected chat
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	docs, err := h.documentService.List(r.Context(), state)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, documentListResponse{
		Documents:        docs,
		SelectedDocument: state.SelectedDocument,
	})
}

// UploadDocument handles a multipart "file" upload
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)

	// Validate file is present
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAppError(w, h.logger, apperrors.NewValidationError("File too large."))
			return
		}
		writeAppError(w, h.logger, apperrors.NewValidationError("File is required"))
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		writeAppError(w, h.logger, apperrors.NewValidationError("File too large."))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeAppError(w, h.logger, apperrors.NewValidationError("Failed to read uploaded file"))
		return
	}

	doc, err := h.documentService.Upload(r.Context(), state, header.Filename, data)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// DeleteDocument removes a document of the selected chat
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	name := mux.Vars(r)["name"]
	if err := h.documentService.Delete(r.Context(), state, name); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Document deleted successfully"})
}

// SelectDocument picks the document used by the notes page
func (h *DocumentHandler) SelectDocument(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req documentNameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	if err := h.documentService.Select(r.Context(), state, req.Name); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, state.Snapshot())
}

package handler

import (
	"net/http"
	"strconv"

	"ai-tutoring-system/internal/domain"
)

// EnhancedNotesFilename is the download name of the rendered notes
const EnhancedNotesFilename = "Enhanced_Notes.pdf"

// NotesHandler serves the notes page: preview, enhance, download
type NotesHandler struct {
	notesService domain.NotesService
	logger       domain.Logger
}

// NewNotesHandler creates a new notes handler
func NewNotesHandler(notesService domain.NotesService, logger domain.Logger) *NotesHandler {
	return &NotesHandler{
		notesService: notesService,
		logger:       logger,
	}
}

// PreviewDocument returns the extracted text of the selected document
func (h *NotesHandler) PreviewDocument(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	text, err := h.notesService.Preview(r.Context(), state)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"filename": state.SelectedDocument,
		"text":     text,
	})
}

// Enhance runs the note enhancement pipeline
func (h *NotesHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req enhanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	notes, err := h.notesService.Enhance(r.Context(), state, req.Instruction)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"enhanced_notes": notes,
		"pdf_ready":      true,
	})
}

// DownloadPDF streams the last rendered notes as an attachment
func (h *NotesHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	state, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	pdfBytes, err := h.notesService.EnhancedPDF(state)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+EnhancedNotesFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

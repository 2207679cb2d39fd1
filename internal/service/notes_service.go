package service

import (
	"context"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
)

const maxInstructionLength = 2000

// notesService wires the pipeline: fetch, extract, enhance, render.
type notesService struct {
	fetcher   *DocumentFetcher
	extractor *TextExtractor
	enhancer  *NoteEnhancer
	renderer  *NotesRenderer
	logger    domain.Logger
}

// NewNotesService creates the note enhancement pipeline
func NewNotesService(fetcher *DocumentFetcher, extractor *TextExtractor, enhancer *NoteEnhancer, renderer *NotesRenderer, logger domain.Logger) *notesService {
	return &notesService{
		fetcher:   fetcher,
		extractor: extractor,
		enhancer:  enhancer,
		renderer:  renderer,
		logger:    logger,
	}
}

// Preview returns the extracted text of the selected document
func (s *notesService) Preview(ctx context.Context, state *domain.SessionState) (string, error) {
	return s.sourceText(ctx, state)
}

// Enhance runs the whole pipeline. The session's notes are replaced only when
// every stage succeeded.
func (s *notesService) Enhance(ctx context.Context, state *domain.SessionState, instruction string) (string, error) {
	if len(instruction) > maxInstructionLength {
		return "", apperrors.NewValidationError("Instruction too long.", "maximum length is 2000 characters")
	}

	text, err := s.sourceText(ctx, state)
	if err != nil {
		return "", err
	}

	enhanced, err := s.enhancer.Enhance(ctx, text, instruction)
	if err != nil {
		return "", err
	}

	pdfBytes, err := s.renderer.Render(enhanced)
	if err != nil {
		return "", err
	}

	state.EnhancedNotes = enhanced
	state.EnhancedNotesPDF = pdfBytes

	s.logger.Info("Notes enhanced", "owner", state.Username, "chat", state.SelectedChat, "filename", state.SelectedDocument, "pdf_bytes", len(pdfBytes))
	return enhanced, nil
}

// EnhancedPDF returns the PDF of the last successful enhancement
func (s *notesService) EnhancedPDF(state *domain.SessionState) ([]byte, error) {
	if err := requireLogin(state); err != nil {
		return nil, err
	}
	if len(state.EnhancedNotesPDF) == 0 {
		return nil, apperrors.NewNotFoundError("No enhanced notes yet. Run Enhance first.")
	}
	return state.EnhancedNotesPDF, nil
}

func (s *notesService) sourceText(ctx context.Context, state *domain.SessionState) (string, error) {
	if err := requireChat(state); err != nil {
		return "", err
	}
	if state.SelectedDocument == "" {
		return "", apperrors.NewValidationError("No document content available", domain.ErrNoDocumentSelected.Error())
	}

	ref := domain.DocumentRef{Owner: state.Username, Session: state.SelectedChat, Filename: state.SelectedDocument}
	content, err := s.fetcher.Fetch(ctx, state, ref)
	if err != nil {
		return "", err
	}
	return s.extractor.Extract(content)
}

package service

import (
	"strings"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
)

// TextExtractor converts fetched content into one string
type TextExtractor struct {
	engine domain.PDFTextEngine
	logger domain.Logger
}

// NewTextExtractor creates an extractor backed by engine
func NewTextExtractor(engine domain.PDFTextEngine, logger domain.Logger) *TextExtractor {
	return &TextExtractor{
		engine: engine,
		logger: logger,
	}
}

// Extract returns text content unchanged. PDF pages are joined with "\n";
// pages without extractable text (scans) are skipped.
func (e *TextExtractor) Extract(content domain.DocumentContent) (string, error) {
	if content.IsText() {
		return content.Text, nil
	}

	pages, err := e.engine.PageTexts(content.Data)
	if err != nil {
		e.logger.Warn("PDF parse failed", "engine", e.engine.Name(), "error", err)
		return "", apperrors.NewUnsupportedDocumentError("Error processing document", err)
	}

	texts := make([]string, 0, len(pages))
	for _, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		texts = append(texts, page)
	}

	e.logger.Debug("PDF text extracted", "engine", e.engine.Name(), "pages", len(pages), "non_empty", len(texts))
	return strings.Join(texts, "\n"), nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
)

const enhancementPreamble = "Analyze and enhance the following notes to improve learning. " +
	"Add structured sections, images, flowcharts, and acronyms where necessary."

// BuildEnhancementPrompt joins the fixed preamble, the user request and the
// verbatim source text.
func BuildEnhancementPrompt(sourceText, instruction string) string {
	return fmt.Sprintf("%s User request: %s\n\n%s", enhancementPreamble, instruction, sourceText)
}

// NoteEnhancer rewrites extracted notes through the text generation service
type NoteEnhancer struct {
	generator domain.TextGenerator
	logger    domain.Logger
}

// NewNoteEnhancer creates a new enhancer
func NewNoteEnhancer(generator domain.TextGenerator, logger domain.Logger) *NoteEnhancer {
	return &NoteEnhancer{
		generator: generator,
		logger:    logger,
	}
}

// Enhance issues one single-turn request. Empty source text is sent as-is.
func (e *NoteEnhancer) Enhance(ctx context.Context, sourceText, instruction string) (string, error) {
	if e.generator == nil {
		return "", apperrors.NewNotConfiguredError("Text generation service not configured")
	}

	e.logger.Info("Enhancing notes", "source_length", len(sourceText), "instruction_length", len(instruction))

	text, err := e.generator.Generate(ctx, BuildEnhancementPrompt(sourceText, instruction))
	if err != nil {
		e.logger.Error("Note enhancement failed", err)
		return "", apperrors.NewGenerationError("Error in AI analysis", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewGenerationError("AI analysis failed.", domain.ErrEmptyGeneration)
	}

	return text, nil
}

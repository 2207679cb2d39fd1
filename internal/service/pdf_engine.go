package service

import (
	"bytes"
	"fmt"

	"ai-tutoring-system/internal/domain"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

const (
	PDFEngineFitz   = "fitz"
	PDFEngineNative = "native"
)

// NewPDFTextEngine returns the engine registered under name; unknown names
// fall back to MuPDF.
func NewPDFTextEngine(name string, logger domain.Logger) domain.PDFTextEngine {
	switch name {
	case PDFEngineNative:
		return &NativeEngine{}
	case PDFEngineFitz, "":
		return &FitzEngine{logger: logger}
	default:
		logger.Warn("Unknown PDF text engine, using fitz", "engine", name)
		return &FitzEngine{logger: logger}
	}
}

// FitzEngine extracts page text with MuPDF
type FitzEngine struct {
	logger domain.Logger
}

func (e *FitzEngine) Name() string { return PDFEngineFitz }

// PageTexts returns the raw text of every page in order
func (e *FitzEngine) PageTexts(pdfBytes []byte) ([]string, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", pageNum+1, err)
		}
		e.logger.Debug("PDF page extracted", "page", pageNum+1, "total", numPages)
		pages = append(pages, text)
	}
	return pages, nil
}

// NativeEngine extracts page text with a pure-Go parser, for builds without MuPDF
type NativeEngine struct{}

func (e *NativeEngine) Name() string { return PDFEngineNative }

// PageTexts returns the plain text of every page in order. The parser panics
// on some malformed inputs; those are reported as errors.
func (e *NativeEngine) PageTexts(pdfBytes []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	numPages := reader.NumPage()
	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

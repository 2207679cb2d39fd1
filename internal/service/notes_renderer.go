package service

import (
	"bytes"
	"fmt"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin   = 50.0
	bodyFontSize = 10.0
	bodyLeading  = 12.0
	spacerHeight = 12.0
	bulletAfter  = 4.0

	builtinFamily = "Times"
	embedFamily   = "NotesFont"
)

type headingStyle struct {
	size       float64
	spaceAfter float64
	align      string
}

var headingStyles = map[int]headingStyle{
	1: {size: 16, spaceAfter: 10, align: "C"},
	2: {size: 14, spaceAfter: 8, align: "L"},
	3: {size: 12, spaceAfter: 6, align: "L"},
}

// NotesRenderer lays out styled documents onto Letter pages
type NotesRenderer struct {
	fontFile string
	logger   domain.Logger
}

// NewNotesRenderer creates a renderer. When fontFile is set it is embedded as
// a UTF-8 font for every style; otherwise the built-in Times family is used.
func NewNotesRenderer(fontFile string, logger domain.Logger) *NotesRenderer {
	return &NotesRenderer{
		fontFile: fontFile,
		logger:   logger,
	}
}

// Render parses markup and returns the PDF bytes
func (r *NotesRenderer) Render(markup string) ([]byte, error) {
	return r.RenderDocument(ParseMarkup(markup).WithTrailingPageBreak())
}

// RenderDocument lays out doc in memory. A page break that ends the document
// closes the current page without opening a new one.
func (r *NotesRenderer) RenderDocument(doc domain.StyledDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Enhanced Notes", true)
	pdf.SetCreator("ai-tutoring-system", true)

	family := builtinFamily
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if r.fontFile != "" {
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8Font(embedFamily, style, r.fontFile)
		}
		family = embedFamily
		tr = func(s string) string { return s }
	}

	pdf.AddPage()

	blocks := doc.Blocks()
	for i, block := range blocks {
		switch block.Kind {
		case domain.BlockSpacer:
			pdf.Ln(spacerHeight)
		case domain.BlockHeading:
			style, ok := headingStyles[block.Level]
			if !ok {
				style = headingStyles[3]
			}
			pdf.SetFont(family, "B", style.size)
			pdf.MultiCell(0, style.size*1.2, tr(block.Text()), "", style.align, false)
			pdf.Ln(style.spaceAfter)
		case domain.BlockBullet:
			pdf.SetFont(family, "", bodyFontSize)
			pdf.MultiCell(0, bodyLeading, tr(block.Text()), "", "L", false)
			pdf.Ln(bulletAfter)
		case domain.BlockEmphasis:
			for _, run := range block.Runs {
				pdf.SetFont(family, string(run.Style), bodyFontSize)
				pdf.Write(bodyLeading, tr(run.Text))
			}
			pdf.Ln(bodyLeading)
		case domain.BlockParagraph:
			pdf.SetFont(family, "", bodyFontSize)
			pdf.MultiCell(0, bodyLeading, tr(block.Text()), "", "L", false)
		case domain.BlockPageBreak:
			if i < len(blocks)-1 {
				pdf.AddPage()
			}
		default:
			return nil, apperrors.NewRenderError("Error generating PDF", fmt.Errorf("unknown block kind %q", block.Kind))
		}

		if pdf.Err() {
			break
		}
	}

	if pdf.Err() {
		r.logger.Error("PDF layout failed", pdf.Error(), "blocks", len(blocks))
		return nil, apperrors.NewRenderError("Error generating PDF", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.logger.Error("PDF output failed", err)
		return nil, apperrors.NewRenderError("Error generating PDF", err)
	}

	r.logger.Debug("Notes rendered", "blocks", len(blocks), "pages", pdf.PageCount(), "bytes", buf.Len())
	return buf.Bytes(), nil
}

package service

import (
	"bytes"
	"context"
	"unicode/utf8"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"

	"github.com/gabriel-vasile/mimetype"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DocumentFetcher resolves (owner, chat, filename) to document content and
// keeps the last fetched document in the session's single cache slot.
type DocumentFetcher struct {
	blobs  domain.BlobStore
	logger domain.Logger
}

// NewDocumentFetcher creates a new fetcher
func NewDocumentFetcher(blobs domain.BlobStore, logger domain.Logger) *DocumentFetcher {
	return &DocumentFetcher{
		blobs:  blobs,
		logger: logger,
	}
}

// Fetch returns the cached content when the slot holds ref, otherwise
// downloads it once and fills the slot. The slot is only written on success.
func (f *DocumentFetcher) Fetch(ctx context.Context, state *domain.SessionState, ref domain.DocumentRef) (domain.DocumentContent, error) {
	path := ref.BlobPath()
	if cached := state.SelectedDocumentText; cached != nil && cached.Path == path {
		f.logger.Debug("Document cache hit", "path", path)
		return cached.Content, nil
	}

	if ref.Session == "" {
		return domain.DocumentContent{}, apperrors.NewNoSessionSelectedError(domain.ErrNoSessionSelected)
	}

	data, err := f.blobs.Download(ctx, path, state.AccessToken)
	if err != nil {
		f.logger.Error("Failed to retrieve document", err, "owner", ref.Owner, "chat", ref.Session, "filename", ref.Filename)
		return domain.DocumentContent{}, storeError("Error retrieving document", err)
	}
	if len(data) == 0 {
		return domain.DocumentContent{}, apperrors.NewRetrievalError("Failed to retrieve the document.", domain.ErrDocumentNotFound)
	}

	content, err := DecodeContent(data)
	if err != nil {
		f.logger.Warn("Failed to decode document", "filename", ref.Filename, "error", err)
		return domain.DocumentContent{}, err
	}

	state.SelectedDocumentText = &domain.CachedDocument{Path: path, Content: content}
	return content, nil
}

// DecodeContent keeps PDF byte streams as-is and decodes everything else as UTF-8 text.
func DecodeContent(data []byte) (domain.DocumentContent, error) {
	if mimetype.Detect(data).Is("application/pdf") {
		return domain.PDFContent(data), nil
	}
	if !utf8.Valid(data) {
		return domain.DocumentContent{}, apperrors.NewDecodeError("Document is not valid UTF-8 text", domain.ErrInvalidFile)
	}
	return domain.TextContent(string(bytes.TrimPrefix(data, utf8BOM))), nil
}

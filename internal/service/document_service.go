package service

import (
	"bytes"
	"context"
	"strconv"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"

	"github.com/gabriel-vasile/mimetype"
)

// supabaseFolderPlaceholder is created by the Supabase dashboard for empty folders.
const supabaseFolderPlaceholder = ".emptyFolderPlaceholder"

type documentService struct {
	blobs       domain.BlobStore
	maxFileSize int64
	logger      domain.Logger
}

// NewDocumentService creates the document upload/list/delete service
func NewDocumentService(blobs domain.BlobStore, maxFileSize int64, logger domain.Logger) *documentService {
	return &documentService{
		blobs:       blobs,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// List returns the documents of the selected chat
func (s *documentService) List(ctx context.Context, state *domain.SessionState) ([]domain.StoredObject, error) {
	if err := requireChat(state); err != nil {
		return nil, err
	}

	objects, err := s.blobs.List(ctx, domain.ChatPrefix(state.Username, state.SelectedChat), state.AccessToken)
	if err != nil {
		s.logger.Error("Failed to list documents", err, "owner", state.Username, "chat", state.SelectedChat)
		return nil, storeError("Error fetching documents", err)
	}

	docs := make([]domain.StoredObject, 0, len(objects))
	for _, obj := range objects {
		if obj.Name == domain.PlaceholderFilename || obj.Name == supabaseFolderPlaceholder {
			continue
		}
		docs = append(docs, obj)
	}
	return docs, nil
}

// Upload stores a PDF or text file under the selected chat, replacing any
// document with the same name.
func (s *documentService) Upload(ctx context.Context, state *domain.SessionState, filename string, data []byte) (*domain.StoredObject, error) {
	if err := requireChat(state); err != nil {
		return nil, err
	}

	name := domain.CleanFilename(filename)
	if name == "" || name == domain.PlaceholderFilename {
		return nil, apperrors.NewValidationError("Invalid file name.")
	}
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("File is empty.")
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, apperrors.NewValidationError("File too large.", "maximum size is "+formatBytes(s.maxFileSize))
	}

	contentType, ok := supportedContentType(data)
	if !ok {
		return nil, apperrors.NewValidationError("Unsupported file type. Upload a PDF or text file.")
	}

	ref := domain.DocumentRef{Owner: state.Username, Session: state.SelectedChat, Filename: name}
	if err := s.blobs.Upload(ctx, ref.BlobPath(), bytes.NewReader(data), contentType, state.AccessToken); err != nil {
		s.logger.Error("Failed to upload document", err, "owner", ref.Owner, "chat", ref.Session, "filename", name)
		return nil, storeError("Error uploading file", err)
	}

	// An upload under the selected name replaces its content.
	if state.SelectedDocument == name {
		state.SelectDocument(name)
	}

	s.logger.Info("Document uploaded", "owner", ref.Owner, "chat", ref.Session, "filename", name, "size", len(data))
	return &domain.StoredObject{Name: name, Size: int64(len(data))}, nil
}

// Delete removes a document and drops it from the session when selected
func (s *documentService) Delete(ctx context.Context, state *domain.SessionState, filename string) error {
	if err := requireChat(state); err != nil {
		return err
	}

	name := domain.CleanFilename(filename)
	if name == "" || name == domain.PlaceholderFilename {
		return apperrors.NewValidationError("Invalid file name.")
	}

	ref := domain.DocumentRef{Owner: state.Username, Session: state.SelectedChat, Filename: name}
	if err := s.blobs.Remove(ctx, []string{ref.BlobPath()}, state.AccessToken); err != nil {
		s.logger.Error("Failed to delete document", err, "owner", ref.Owner, "chat", ref.Session, "filename", name)
		return storeError("Error deleting file", err)
	}

	if state.SelectedDocument == name {
		state.ClearDocument()
	}

	s.logger.Info("Document deleted", "owner", ref.Owner, "chat", ref.Session, "filename", name)
	return nil
}

// Select makes filename the pipeline's input document and invalidates the
// session's cached copy.
func (s *documentService) Select(ctx context.Context, state *domain.SessionState, filename string) error {
	docs, err := s.List(ctx, state)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if doc.Name == filename {
			state.SelectDocument(doc.Name)
			return nil
		}
	}
	return apperrors.NewNotFoundError("Document not found")
}

// supportedContentType accepts PDFs and anything detected as a kind of text.
func supportedContentType(data []byte) (string, bool) {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("application/pdf") {
			return "application/pdf", true
		}
		if m.Is("text/plain") {
			return "text/plain; charset=utf-8", true
		}
	}
	return "", false
}

func formatBytes(n int64) string {
	const mib = 1024 * 1024
	if n >= mib && n%mib == 0 {
		return strconv.FormatInt(n/mib, 10) + " MiB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}

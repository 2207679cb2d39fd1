package service

import (
	"bytes"
	"context"
	"testing"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"
	"ai-tutoring-system/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxFileSize = 1024

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestDocumentService_UploadAndList(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.objects["alice/Bio/placeholder.txt"] = domain.PlaceholderContent
	svc := NewDocumentService(blobs, testMaxFileSize, logger.NewNop())
	state := loggedInState()

	doc, err := svc.Upload(context.Background(), state, "../../etc/cells.txt", []byte("cells are small"))
	require.NoError(t, err)
	assert.Equal(t, "cells.txt", doc.Name)
	assert.Equal(t, []byte("cells are small"), blobs.objects["alice/Bio/cells.txt"])

	_, err = svc.Upload(context.Background(), state, "lecture.pdf", []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n"))
	require.NoError(t, err)

	docs, err := svc.List(context.Background(), state)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "cells.txt", docs[0].Name)
	assert.Equal(t, "lecture.pdf", docs[1].Name)
}

func TestDocumentService_UploadValidation(t *testing.T) {
	svc := NewDocumentService(newFakeBlobStore(), testMaxFileSize, logger.NewNop())
	state := loggedInState()

	cases := map[string]struct {
		name string
		data []byte
	}{
		"empty file":   {"a.txt", nil},
		"too large":    {"a.txt", bytes.Repeat([]byte("a"), testMaxFileSize+1)},
		"image":        {"a.png", pngHeader},
		"no name":      {"", []byte("x")},
		"placeholder":  {"placeholder.txt", []byte("x")},
		"dot-dot name": {"..", []byte("x")},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), state, tc.name, tc.data)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}
}

func TestDocumentService_RequiresChat(t *testing.T) {
	svc := NewDocumentService(newFakeBlobStore(), testMaxFileSize, logger.NewNop())
	state := loggedInState()
	state.SelectedChat = ""

	_, err := svc.List(context.Background(), state)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNoSessionSelected))

	_, err = svc.Upload(context.Background(), state, "a.txt", []byte("x"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNoSessionSelected))
}

func TestDocumentService_DeleteSelectedClearsCache(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.objects["alice/Bio/cells.txt"] = []byte("cells")
	svc := NewDocumentService(blobs, testMaxFileSize, logger.NewNop())

	state := loggedInState()
	state.SelectedDocument = "cells.txt"
	state.SelectedDocumentText = &domain.CachedDocument{Path: "alice/Bio/cells.txt", Content: domain.TextContent("cells")}
	state.EnhancedNotes = "notes"

	require.NoError(t, svc.Delete(context.Background(), state, "cells.txt"))
	assert.NotContains(t, blobs.objects, "alice/Bio/cells.txt")
	assert.Empty(t, state.SelectedDocument)
	assert.Nil(t, state.SelectedDocumentText)
	assert.Empty(t, state.EnhancedNotes)
}

func TestDocumentService_SelectInvalidatesCache(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.objects["alice/Bio/cells.txt"] = []byte("cells")
	svc := NewDocumentService(blobs, testMaxFileSize, logger.NewNop())

	state := loggedInState()
	state.SelectedDocument = "cells.txt"
	state.SelectedDocumentText = &domain.CachedDocument{Path: "alice/Bio/cells.txt", Content: domain.TextContent("stale")}

	require.NoError(t, svc.Select(context.Background(), state, "cells.txt"))
	assert.Equal(t, "cells.txt", state.SelectedDocument)
	assert.Nil(t, state.SelectedDocumentText)

	err := svc.Select(context.Background(), state, "missing.txt")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestDocumentService_ReuploadRefreshesSelected(t *testing.T) {
	blobs := newFakeBlobStore()
	svc := NewDocumentService(blobs, testMaxFileSize, logger.NewNop())

	state := loggedInState()
	state.SelectedDocument = "cells.txt"
	state.SelectedDocumentText = &domain.CachedDocument{Path: "alice/Bio/cells.txt", Content: domain.TextContent("old")}

	_, err := svc.Upload(context.Background(), state, "cells.txt", []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, "cells.txt", state.SelectedDocument)
	assert.Nil(t, state.SelectedDocumentText)
}

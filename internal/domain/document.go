package domain

import (
	"path"
	"strings"
	"time"
)

// DocumentKind distinguishes textual payloads from PDF byte streams.
type DocumentKind string

const (
	DocumentKindText DocumentKind = "text"
	DocumentKindPDF  DocumentKind = "pdf"
)

// DocumentContent is a fetched document, either UTF-8 text or a PDF byte stream.
type DocumentContent struct {
	Kind DocumentKind
	Text string
	Data []byte
}

// TextContent wraps already-decoded text.
func TextContent(text string) DocumentContent {
	return DocumentContent{Kind: DocumentKindText, Text: text}
}

// PDFContent wraps a PDF byte stream.
func PDFContent(data []byte) DocumentContent {
	return DocumentContent{Kind: DocumentKindPDF, Data: data}
}

// IsText reports whether the content is already textual.
func (c DocumentContent) IsText() bool {
	return c.Kind != DocumentKindPDF
}

// DocumentRef identifies a document by owner, chat session and filename.
type DocumentRef struct {
	Owner    string
	Session  string
	Filename string
}

// BlobPath returns the storage path {owner}/{session}/{filename}.
func (r DocumentRef) BlobPath() string {
	return r.Owner + "/" + r.Session + "/" + r.Filename
}

// ChatPrefix returns {owner}/{session}.
func ChatPrefix(owner, session string) string {
	return owner + "/" + session
}

// PlaceholderFilename simulates folder existence in the blob store.
const PlaceholderFilename = "placeholder.txt"

// PlaceholderContent is the body of the folder placeholder object.
var PlaceholderContent = []byte("Folder placeholder")

// OwnerPlaceholderPath returns {owner}/placeholder.txt.
func OwnerPlaceholderPath(owner string) string {
	return owner + "/" + PlaceholderFilename
}

// CleanFilename reduces an uploaded name to a safe base name.
func CleanFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

// StoredObject is one listing entry of the blob store.
type StoredObject struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

package document

import (
	"fmt"
	"time"
)

// MaxPayloadSize is the maximum accepted document payload in bytes.
const MaxPayloadSize = 64 << 20 // 64MB

// Document is an opened document's metadata (immutable value object).
// The raw payload is handed wholesale to the rendering collaborator and is
// not kept here.
type Document struct {
	id         string
	name       string
	size       int64
	numPages   int
	uploadedAt time.Time
}

// New validates and creates a Document.
func New(id, name string, size int64, numPages int, uploadedAt time.Time) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if size <= 0 {
		return Document{}, fmt.Errorf("document payload is empty")
	}
	if size > MaxPayloadSize {
		return Document{}, fmt.Errorf("document too large (max %d bytes)", int64(MaxPayloadSize))
	}
	if numPages < 1 {
		return Document{}, fmt.Errorf("document must have at least one page, got %d", numPages)
	}
	return Document{id: id, name: name, size: size, numPages: numPages, uploadedAt: uploadedAt}, nil
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Name returns the user-supplied file name, possibly empty.
func (d Document) Name() string { return d.name }

// Size returns the payload size in bytes.
func (d Document) Size() int64 { return d.size }

// NumPages returns the page count reported by the rendering collaborator.
func (d Document) NumPages() int { return d.numPages }

// UploadedAt returns the upload time.
func (d Document) UploadedAt() time.Time { return d.uploadedAt }

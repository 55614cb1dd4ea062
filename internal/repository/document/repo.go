// Package document stores opened documents. The store is memory-only:
// documents live for the process lifetime and are gone after a restart.
package document

import (
	"context"
	"fmt"
	"sync"

	"github.com/leitor-app/leitor/internal/domain"
	domdoc "github.com/leitor-app/leitor/internal/domain/document"
)

type entry struct {
	doc    domdoc.Document
	handle domain.DocumentHandle
}

// Repo is an in-memory document repository.
type Repo struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty document repository.
func New() *Repo {
	return &Repo{entries: make(map[string]entry)}
}

// Save stores a document together with its open renderer handle.
func (r *Repo) Save(_ context.Context, doc domdoc.Document, handle domain.DocumentHandle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[doc.ID()] = entry{doc: doc, handle: handle}
	return nil
}

// Get retrieves a document's metadata by ID.
func (r *Repo) Get(_ context.Context, id string) (domdoc.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return domdoc.Document{}, fmt.Errorf("document %q: %w", id, domain.ErrDocumentNotFound)
	}
	return e.doc, nil
}

// Handle retrieves the open renderer handle for a document.
func (r *Repo) Handle(_ context.Context, id string) (domain.DocumentHandle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", id, domain.ErrDocumentNotFound)
	}
	return e.handle, nil
}

// Delete removes a document. Returns ErrDocumentNotFound when absent.
func (r *Repo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return fmt.Errorf("document %q: %w", id, domain.ErrDocumentNotFound)
	}
	delete(r.entries, id)
	return nil
}

// Count returns the number of stored documents.
func (r *Repo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries), nil
}

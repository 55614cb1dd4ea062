// Package highlight stores per-document highlight collections in
// newest-first order. Memory-only: the whole collection is
// process-lifetime state with no size limit and no persistence.
package highlight

import (
	"context"
	"fmt"
	"sync"

	"github.com/leitor-app/leitor/internal/domain"
	domhl "github.com/leitor-app/leitor/internal/domain/highlight"
)

// Repo is an in-memory highlight repository keyed by document ID.
type Repo struct {
	mu   sync.RWMutex
	byID map[string][]domhl.Highlight // newest first
}

// New creates an empty highlight repository.
func New() *Repo {
	return &Repo{byID: make(map[string][]domhl.Highlight)}
}

// Add prepends a highlight to the document's collection. Existing records
// keep their content and relative order.
func (r *Repo) Add(_ context.Context, documentID string, h domhl.Highlight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byID[documentID]
	updated := make([]domhl.Highlight, 0, len(existing)+1)
	updated = append(updated, h)
	updated = append(updated, existing...)
	r.byID[documentID] = updated
	return nil
}

// List returns the document's highlights, newest first.
func (r *Repo) List(_ context.Context, documentID string) ([]domhl.Highlight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	existing := r.byID[documentID]
	out := make([]domhl.Highlight, len(existing))
	copy(out, existing)
	return out, nil
}

// Get retrieves one highlight by ID.
func (r *Repo) Get(_ context.Context, documentID, id string) (domhl.Highlight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.byID[documentID] {
		if h.ID() == id {
			return h, nil
		}
	}
	return domhl.Highlight{}, fmt.Errorf("highlight %q: %w", id, domain.ErrHighlightNotFound)
}

// Update replaces a highlight in place, preserving its position in the
// ordering. Returns ErrHighlightNotFound when absent.
func (r *Repo) Update(_ context.Context, documentID string, h domhl.Highlight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byID[documentID]
	for i := range existing {
		if existing[i].ID() == h.ID() {
			existing[i] = h
			return nil
		}
	}
	return fmt.Errorf("highlight %q: %w", h.ID(), domain.ErrHighlightNotFound)
}

// Delete removes a highlight by ID. Deleting a missing ID is a no-op.
func (r *Repo) Delete(_ context.Context, documentID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byID[documentID]
	for i := range existing {
		if existing[i].ID() == id {
			r.byID[documentID] = append(existing[:i:i], existing[i+1:]...)
			return nil
		}
	}
	return nil
}

// DeleteByDocument drops the whole collection for a document.
func (r *Repo) DeleteByDocument(_ context.Context, documentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, documentID)
	return nil
}

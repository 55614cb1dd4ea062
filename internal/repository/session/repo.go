// Package session stores reading sessions, one per open document.
// Memory-only, reset whenever a new document replaces an old one.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/leitor-app/leitor/internal/domain"
	domsess "github.com/leitor-app/leitor/internal/domain/session"
)

// Repo is an in-memory session repository keyed by document ID.
type Repo struct {
	mu       sync.RWMutex
	sessions map[string]domsess.Session
}

// New creates an empty session repository.
func New() *Repo {
	return &Repo{sessions: make(map[string]domsess.Session)}
}

// Save stores a session, replacing any previous one for the same document.
func (r *Repo) Save(_ context.Context, s domsess.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.DocumentID()] = s
	return nil
}

// GetByDocument retrieves the session for a document.
func (r *Repo) GetByDocument(_ context.Context, documentID string) (domsess.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[documentID]
	if !ok {
		return domsess.Session{}, fmt.Errorf("session for document %q: %w", documentID, domain.ErrSessionNotFound)
	}
	return s, nil
}

// Update applies fn to the stored session and stores the result, all under
// the write lock. An error from fn aborts the update and is returned as-is.
func (r *Repo) Update(
	_ context.Context, documentID string, fn func(domsess.Session) (domsess.Session, error),
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[documentID]
	if !ok {
		return fmt.Errorf("session for document %q: %w", documentID, domain.ErrSessionNotFound)
	}
	updated, err := fn(s)
	if err != nil {
		return err
	}
	r.sessions[documentID] = updated
	return nil
}

// DeleteByDocument removes the session for a document. No-op when absent.
func (r *Repo) DeleteByDocument(_ context.Context, documentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, documentID)
	return nil
}

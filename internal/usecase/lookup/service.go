// Package lookup orchestrates word lookups: one in flight per session,
// the result replacing the dictionary panel wholesale.
package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/leitor-app/leitor/internal/domain"
	"github.com/leitor-app/leitor/internal/domain/dictionary"
	domsess "github.com/leitor-app/leitor/internal/domain/session"
)

// Service runs lookups against the provider and keeps the per-session
// dictionary panel.
type Service struct {
	sessions SessionRepository
	client   domain.LookupClient
}

// New creates a lookup service.
func New(sessions SessionRepository, client domain.LookupClient) *Service {
	return &Service{sessions: sessions, client: client}
}

// Lookup sends the text to the provider and stores the result as the
// session's dictionary panel. While a lookup is pending for the session,
// further lookups are refused; the pending response still lands in the
// panel even if the user has moved on meanwhile.
func (s *Service) Lookup(ctx context.Context, documentID, text string) (dictionary.Result, error) {
	if strings.TrimSpace(text) == "" {
		return dictionary.Result{}, domain.ErrEmptySelection
	}

	// Claim the in-flight flag atomically: of two concurrent lookups for
	// the same session exactly one proceeds.
	err := s.sessions.Update(ctx, documentID, func(sess domsess.Session) (domsess.Session, error) {
		if sess.LookupInFlight() {
			return domsess.Session{}, fmt.Errorf("document %q: %w", documentID, domain.ErrLookupInFlight)
		}
		return sess.WithLookupInFlight(true), nil
	})
	if err != nil {
		return dictionary.Result{}, err
	}

	result, lookupErr := s.client.Lookup(ctx, text)

	// Always release the in-flight flag, even when the provider failed.
	// The update touches only the flag and the panel, so a selection or
	// view change saved during the call is preserved.
	err = s.sessions.Update(ctx, documentID, func(sess domsess.Session) (domsess.Session, error) {
		sess = sess.WithLookupInFlight(false)
		if lookupErr == nil {
			sess = sess.WithPanel(result)
		}
		return sess, nil
	})
	if err != nil {
		return dictionary.Result{}, fmt.Errorf("release lookup: %w", err)
	}

	if lookupErr != nil {
		return dictionary.Result{}, fmt.Errorf("lookup %q: %w", text, lookupErr)
	}
	return result, nil
}

// Panel returns the session's current dictionary panel.
func (s *Service) Panel(ctx context.Context, documentID string) (dictionary.Result, error) {
	sess, err := s.sessions.GetByDocument(ctx, documentID)
	if err != nil {
		return dictionary.Result{}, fmt.Errorf("get session: %w", err)
	}
	panel, ok := sess.Panel()
	if !ok {
		return dictionary.Result{}, domain.ErrNoDictionaryResult
	}
	return panel, nil
}

// Clear empties the session's dictionary panel.
func (s *Service) Clear(ctx context.Context, documentID string) error {
	sess, err := s.sessions.GetByDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if err := s.sessions.Save(ctx, sess.WithoutPanel()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

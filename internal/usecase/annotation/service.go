// Package annotation implements the highlight lifecycle: creation from the
// active selection, note editing, and deletion. The collection is
// newest-first and never merged, deduplicated or reconciled.
package annotation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leitor-app/leitor/internal/domain"
	domhl "github.com/leitor-app/leitor/internal/domain/highlight"
	domsess "github.com/leitor-app/leitor/internal/domain/session"
)

// Service manages a document's highlights and the session selection they
// are created from.
type Service struct {
	repo     Repository
	sessions SessionRepository
	now      func() time.Time
}

// New creates an annotation service.
func New(repo Repository, sessions SessionRepository) *Service {
	return &Service{repo: repo, sessions: sessions, now: time.Now}
}

// SetSelection replaces the session's active text selection.
func (s *Service) SetSelection(ctx context.Context, documentID, text string, page int) error {
	sess, err := s.sessions.GetByDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	sel, err := domsess.NewSelection(text, page)
	if err != nil {
		return fmt.Errorf("build selection: %w", err)
	}

	if err := s.sessions.Save(ctx, sess.WithSelection(sel)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ClearSelection drops the session's active text selection.
func (s *Service) ClearSelection(ctx context.Context, documentID string) error {
	sess, err := s.sessions.GetByDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if err := s.sessions.Save(ctx, sess.WithoutSelection()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// AddHighlight creates a highlight with the given color from the active
// selection, prepends it to the collection, and clears the selection.
func (s *Service) AddHighlight(ctx context.Context, documentID, color string) (domhl.Highlight, error) {
	sess, sel, err := s.requireSelection(ctx, documentID)
	if err != nil {
		return domhl.Highlight{}, err
	}

	h, err := domhl.New(uuid.NewString(), sel.Page(), sel.Text(), color, s.now())
	if err != nil {
		return domhl.Highlight{}, fmt.Errorf("build highlight: %w", err)
	}

	if err := s.repo.Add(ctx, documentID, h); err != nil {
		return domhl.Highlight{}, fmt.Errorf("add highlight: %w", err)
	}

	// The selection is consumed by the highlight.
	if err := s.sessions.Save(ctx, sess.WithoutSelection()); err != nil {
		return domhl.Highlight{}, fmt.Errorf("clear selection: %w", err)
	}

	return h, nil
}

// Annotate creates a highlight carrying a note from the active selection.
// The color may be empty (note-only annotation). An empty or
// whitespace-only note is rejected.
func (s *Service) Annotate(ctx context.Context, documentID, color, note string) (domhl.Highlight, error) {
	if strings.TrimSpace(note) == "" {
		return domhl.Highlight{}, domain.ErrEmptyNote
	}

	sess, sel, err := s.requireSelection(ctx, documentID)
	if err != nil {
		return domhl.Highlight{}, err
	}

	h, err := domhl.New(uuid.NewString(), sel.Page(), sel.Text(), color, s.now())
	if err != nil {
		return domhl.Highlight{}, fmt.Errorf("build highlight: %w", err)
	}
	h = h.WithComment(note)

	if err := s.repo.Add(ctx, documentID, h); err != nil {
		return domhl.Highlight{}, fmt.Errorf("add annotation: %w", err)
	}

	if err := s.sessions.Save(ctx, sess.WithoutSelection()); err != nil {
		return domhl.Highlight{}, fmt.Errorf("clear selection: %w", err)
	}

	return h, nil
}

// EditComment replaces the note of an existing annotated highlight.
// Only the comment changes; id, page, text, color, creation time and the
// record's position in the ordering stay untouched. Editing is only
// available for highlights that already carry a note.
func (s *Service) EditComment(ctx context.Context, documentID, id, note string) (domhl.Highlight, error) {
	if strings.TrimSpace(note) == "" {
		return domhl.Highlight{}, domain.ErrEmptyNote
	}

	h, err := s.repo.Get(ctx, documentID, id)
	if err != nil {
		return domhl.Highlight{}, fmt.Errorf("get highlight: %w", err)
	}
	if !h.HasComment() {
		return domhl.Highlight{}, fmt.Errorf("highlight %q: %w", id, domain.ErrNotAnnotated)
	}

	updated := h.WithComment(note)
	if err := s.repo.Update(ctx, documentID, updated); err != nil {
		return domhl.Highlight{}, fmt.Errorf("update highlight: %w", err)
	}
	return updated, nil
}

// List returns the document's highlights, newest first.
func (s *Service) List(ctx context.Context, documentID string) ([]domhl.Highlight, error) {
	hls, err := s.repo.List(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("list highlights: %w", err)
	}
	return hls, nil
}

// Delete removes a highlight. Deleting an absent ID is a no-op.
func (s *Service) Delete(ctx context.Context, documentID, id string) error {
	if err := s.repo.Delete(ctx, documentID, id); err != nil {
		return fmt.Errorf("delete highlight: %w", err)
	}
	return nil
}

// requireSelection loads the session and its non-empty selection.
func (s *Service) requireSelection(
	ctx context.Context, documentID string,
) (domsess.Session, domsess.Selection, error) {
	sess, err := s.sessions.GetByDocument(ctx, documentID)
	if err != nil {
		return domsess.Session{}, domsess.Selection{}, fmt.Errorf("get session: %w", err)
	}
	sel := sess.Selection()
	if sel.IsEmpty() {
		return domsess.Session{}, domsess.Selection{}, domain.ErrEmptySelection
	}
	return sess, sel, nil
}

// Package viewer drives pagination, zoom and view-mode changes and
// sequences the page re-renders they trigger.
package viewer

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/leitor-app/leitor/internal/domain"
	domsess "github.com/leitor-app/leitor/internal/domain/session"
	domview "github.com/leitor-app/leitor/internal/domain/viewer"
	"github.com/leitor-app/leitor/internal/logger"
)

// Service applies view-state transitions and re-renders the visible pages
// after every page, scale or mode change.
type Service struct {
	sessions SessionRepository
	docs     HandleReader
	surfaces *surfaceStore
}

// New creates a viewer service.
func New(sessions SessionRepository, docs HandleReader) *Service {
	return &Service{
		sessions: sessions,
		docs:     docs,
		surfaces: newSurfaceStore(),
	}
}

// View returns the current view state and the last rendered surfaces
// without triggering a re-render.
func (s *Service) View(ctx context.Context, documentID string) (domview.State, []domain.Surface, error) {
	sess, err := s.sessions.GetByDocument(ctx, documentID)
	if err != nil {
		return domview.State{}, nil, fmt.Errorf("get session: %w", err)
	}
	return sess.View(), s.surfaces.snapshot(documentID), nil
}

// Next advances by one page (single mode) or two (double mode).
func (s *Service) Next(ctx context.Context, documentID string) (domview.State, []domain.Surface, error) {
	return s.transition(ctx, documentID, domview.State.Next)
}

// Prev retreats by one page (single mode) or two (double mode).
func (s *Service) Prev(ctx context.Context, documentID string) (domview.State, []domain.Surface, error) {
	return s.transition(ctx, documentID, domview.State.Prev)
}

// GoTo jumps to a page, clamped into [1, numPages].
func (s *Service) GoTo(ctx context.Context, documentID string, page int) (domview.State, []domain.Surface, error) {
	return s.transition(ctx, documentID, func(v domview.State) domview.State {
		return v.GoTo(page)
	})
}

// ZoomIn increases the scale by one step.
func (s *Service) ZoomIn(ctx context.Context, documentID string) (domview.State, []domain.Surface, error) {
	return s.transition(ctx, documentID, domview.State.ZoomIn)
}

// ZoomOut decreases the scale by one step.
func (s *Service) ZoomOut(ctx context.Context, documentID string) (domview.State, []domain.Surface, error) {
	return s.transition(ctx, documentID, domview.State.ZoomOut)
}

// SetMode switches between single- and double-page layout.
func (s *Service) SetMode(ctx context.Context, documentID string, mode domview.Mode) (domview.State, []domain.Surface, error) {
	sess, err := s.sessions.GetByDocument(ctx, documentID)
	if err != nil {
		return domview.State{}, nil, fmt.Errorf("get session: %w", err)
	}

	view, err := sess.View().WithMode(mode)
	if err != nil {
		return domview.State{}, nil, fmt.Errorf("set view mode: %w", err)
	}

	return s.apply(ctx, sess.WithView(view))
}

// Drop releases the rendered surfaces of a closed document.
func (s *Service) Drop(documentID string) {
	s.surfaces.drop(documentID)
}

// transition loads the session, applies a pure view-state step, persists
// the result and re-renders the now-visible pages.
func (s *Service) transition(
	ctx context.Context, documentID string, step func(domview.State) domview.State,
) (domview.State, []domain.Surface, error) {
	sess, err := s.sessions.GetByDocument(ctx, documentID)
	if err != nil {
		return domview.State{}, nil, fmt.Errorf("get session: %w", err)
	}
	return s.apply(ctx, sess.WithView(step(sess.View())))
}

// apply persists the updated session and re-renders its visible pages.
func (s *Service) apply(ctx context.Context, sess domsess.Session) (domview.State, []domain.Surface, error) {
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domview.State{}, nil, fmt.Errorf("save session: %w", err)
	}

	surfaces, err := s.renderVisible(ctx, sess.DocumentID(), sess.View())
	if err != nil {
		return domview.State{}, nil, err
	}
	return sess.View(), surfaces, nil
}

// renderVisible renders the visible pages concurrently, each into a fresh
// surface. Renders for a slot are not cancelled when the view changes
// again quickly; the last-resolved render wins. A failed page render is
// logged and its slot left empty.
func (s *Service) renderVisible(
	ctx context.Context, documentID string, view domview.State,
) ([]domain.Surface, error) {
	handle, err := s.docs.Handle(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document handle: %w", err)
	}

	pages := view.VisiblePages()
	s.surfaces.clear(documentID, len(pages))

	var wg sync.WaitGroup
	for slot, page := range pages {
		wg.Add(1)
		go func(slot, page int) {
			defer wg.Done()
			surface, err := handle.RenderPage(ctx, page, view.Scale())
			if err != nil {
				logger.FromContext(ctx).Warn("page render failed",
					zap.String("document_id", documentID),
					zap.Int("page", page),
					zap.Error(err),
				)
				return
			}
			s.surfaces.set(documentID, slot, surface)
		}(slot, page)
	}
	wg.Wait()

	return s.surfaces.snapshot(documentID), nil
}

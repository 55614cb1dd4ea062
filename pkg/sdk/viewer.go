package leitor

import (
	"context"
	"fmt"
	"time"

	"github.com/leitor-app/leitor/internal/domain"
	domview "github.com/leitor-app/leitor/internal/domain/viewer"
)

// ViewerService drives paging, zoom and view mode for one open document.
// Every transition re-renders the visible pages; View alone does not.
type ViewerService struct {
	documentID string
	svc        viewerUseCase
	obs        *observer
}

// View returns the current view state and the last rendered surfaces.
func (s *ViewerService) View(ctx context.Context) (View, error) {
	return s.call(ctx, "viewer.view", s.svc.View)
}

// Next advances by one page (single mode) or two (double mode), clamped
// at the last page.
func (s *ViewerService) Next(ctx context.Context) (View, error) {
	return s.call(ctx, "viewer.next", s.svc.Next)
}

// Prev retreats by one page (single mode) or two (double mode), clamped
// at the first page.
func (s *ViewerService) Prev(ctx context.Context) (View, error) {
	return s.call(ctx, "viewer.prev", s.svc.Prev)
}

// GoTo jumps to a page, clamped into [1, numPages].
func (s *ViewerService) GoTo(ctx context.Context, page int) (View, error) {
	return s.call(ctx, "viewer.goto", func(ctx context.Context, documentID string) (domview.State, []domain.Surface, error) {
		return s.svc.GoTo(ctx, documentID, page)
	})
}

// ZoomIn increases the scale by one step, clamped at the maximum.
func (s *ViewerService) ZoomIn(ctx context.Context) (View, error) {
	return s.call(ctx, "viewer.zoom_in", s.svc.ZoomIn)
}

// ZoomOut decreases the scale by one step, clamped at the minimum.
func (s *ViewerService) ZoomOut(ctx context.Context) (View, error) {
	return s.call(ctx, "viewer.zoom_out", s.svc.ZoomOut)
}

// SetMode switches between single- and double-page layout.
func (s *ViewerService) SetMode(ctx context.Context, mode ViewMode) (View, error) {
	return s.call(ctx, "viewer.set_mode", func(ctx context.Context, documentID string) (domview.State, []domain.Surface, error) {
		return s.svc.SetMode(ctx, documentID, domview.Mode(mode))
	})
}

func (s *ViewerService) call(
	ctx context.Context, op string,
	fn func(ctx context.Context, documentID string) (domview.State, []domain.Surface, error),
) (view View, err error) {
	start := time.Now()
	defer func() { s.obs.observe(op, start, err) }()

	state, surfaces, err := fn(ctx, s.documentID)
	if err != nil {
		return View{}, fmt.Errorf("%s: %w", op, err)
	}
	return fromInternalView(state, surfaces), nil
}

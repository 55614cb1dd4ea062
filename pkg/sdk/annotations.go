package leitor

import (
	"context"
	"fmt"
	"time"
)

// AnnotationService manages the selection and highlight lifecycle for one
// open document. Highlights are listed newest first.
type AnnotationService struct {
	documentID string
	svc        annotationUseCase
	obs        *observer
}

// Select sets the active text selection. A selection is the precondition
// for Highlight and Annotate.
func (s *AnnotationService) Select(ctx context.Context, text string, page int) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("annotation.select", start, err) }()

	if err = s.svc.SetSelection(ctx, s.documentID, text, page); err != nil {
		return fmt.Errorf("select: %w", err)
	}
	return nil
}

// ClearSelection drops the active selection.
func (s *AnnotationService) ClearSelection(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("annotation.clear_selection", start, err) }()

	if err = s.svc.ClearSelection(ctx, s.documentID); err != nil {
		return fmt.Errorf("clear selection: %w", err)
	}
	return nil
}

// Highlight creates a highlight with the given color from the active
// selection and consumes the selection.
func (s *AnnotationService) Highlight(ctx context.Context, color string) (h Highlight, err error) {
	start := time.Now()
	defer func() { s.obs.observe("annotation.highlight", start, err) }()

	created, err := s.svc.AddHighlight(ctx, s.documentID, color)
	if err != nil {
		return Highlight{}, fmt.Errorf("highlight: %w", err)
	}
	return fromInternalHighlight(created), nil
}

// Annotate creates a highlight carrying a note from the active selection.
// An empty or whitespace-only note is rejected with ErrEmptyNote.
func (s *AnnotationService) Annotate(ctx context.Context, color, note string) (h Highlight, err error) {
	start := time.Now()
	defer func() { s.obs.observe("annotation.annotate", start, err) }()

	created, err := s.svc.Annotate(ctx, s.documentID, color, note)
	if err != nil {
		return Highlight{}, fmt.Errorf("annotate: %w", err)
	}
	return fromInternalHighlight(created), nil
}

// EditComment replaces the note of an annotated highlight. Only the
// comment changes; highlights without a note return ErrNotAnnotated.
func (s *AnnotationService) EditComment(ctx context.Context, id, note string) (h Highlight, err error) {
	start := time.Now()
	defer func() { s.obs.observe("annotation.edit_comment", start, err) }()

	updated, err := s.svc.EditComment(ctx, s.documentID, id, note)
	if err != nil {
		return Highlight{}, fmt.Errorf("edit comment: %w", err)
	}
	return fromInternalHighlight(updated), nil
}

// List returns the document's highlights, newest first.
func (s *AnnotationService) List(ctx context.Context) (hls []Highlight, err error) {
	start := time.Now()
	defer func() { s.obs.observe("annotation.list", start, err) }()

	items, err := s.svc.List(ctx, s.documentID)
	if err != nil {
		return nil, fmt.Errorf("list highlights: %w", err)
	}
	out := make([]Highlight, len(items))
	for i, h := range items {
		out[i] = fromInternalHighlight(h)
	}
	return out, nil
}

// Delete removes a highlight. Deleting an absent ID is a no-op.
func (s *AnnotationService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("annotation.delete", start, err) }()

	if err = s.svc.Delete(ctx, s.documentID, id); err != nil {
		return fmt.Errorf("delete highlight: %w", err)
	}
	return nil
}

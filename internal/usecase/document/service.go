package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leitor-app/leitor/internal/domain"
	domdoc "github.com/leitor-app/leitor/internal/domain/document"
	domsess "github.com/leitor-app/leitor/internal/domain/session"
	"github.com/leitor-app/leitor/internal/domain/viewer"
)

// Service opens and closes documents. Opening a document hands the payload
// wholesale to the rendering collaborator and starts a fresh reading
// session for it.
type Service struct {
	repo     Repository
	sessions SessionWriter
	hls      HighlightPurger
	renderer domain.Renderer
	bounds   viewer.Bounds
	now      func() time.Time
}

// New creates a document service.
func New(repo Repository, sessions SessionWriter, hls HighlightPurger, renderer domain.Renderer) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		hls:      hls,
		renderer: renderer,
		bounds:   viewer.DefaultBounds(),
		now:      time.Now,
	}
}

// WithZoomBounds overrides the default zoom bounds for new sessions.
func (s *Service) WithZoomBounds(b viewer.Bounds) *Service {
	s.bounds = b
	return s
}

// Open parses an uploaded payload, records the document, and creates its
// reading session (page 1, scale 1.0, single-page mode).
func (s *Service) Open(ctx context.Context, name string, payload []byte) (domdoc.Document, error) {
	if len(payload) == 0 {
		return domdoc.Document{}, fmt.Errorf("empty payload: %w", domain.ErrInvalidDocument)
	}
	if len(payload) > domdoc.MaxPayloadSize {
		return domdoc.Document{}, fmt.Errorf("payload too large: %w", domain.ErrInvalidDocument)
	}

	handle, err := s.renderer.Open(payload)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("open document: %w", err)
	}

	id := uuid.NewString()
	doc, err := domdoc.New(id, name, int64(len(payload)), handle.NumPages(), s.now())
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("build document: %w", err)
	}

	view, err := viewer.New(doc.NumPages(), s.bounds)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("build view state: %w", err)
	}
	sess, err := domsess.New(uuid.NewString(), id, view)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("build session: %w", err)
	}

	if err := s.repo.Save(ctx, doc, handle); err != nil {
		return domdoc.Document{}, fmt.Errorf("save document: %w", err)
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domdoc.Document{}, fmt.Errorf("save session: %w", err)
	}

	return doc, nil
}

// Get retrieves a document's metadata.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Close removes a document together with its session and highlights.
func (s *Service) Close(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if err := s.sessions.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := s.hls.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("delete highlights: %w", err)
	}
	return nil
}

package leitor

import (
	"context"
	"fmt"
	"time"
)

// DocumentService opens and closes documents.
type DocumentService struct {
	docSvc  documentUseCase
	viewSvc viewerUseCase
	obs     *observer
}

// Open parses a PDF payload and starts a fresh reading session for it:
// page 1, scale 1.0, single-page mode.
func (s *DocumentService) Open(ctx context.Context, name string, payload []byte) (doc Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document.open", start, err) }()

	d, err := s.docSvc.Open(ctx, name, payload)
	if err != nil {
		return Document{}, fmt.Errorf("open document: %w", err)
	}
	return fromInternalDocument(d), nil
}

// Get retrieves an open document's metadata.
func (s *DocumentService) Get(ctx context.Context, id string) (doc Document, err error) {
	start := time.Now()
	defer func() { s.obs.observe("document.get", start, err) }()

	d, err := s.docSvc.Get(ctx, id)
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return fromInternalDocument(d), nil
}

// Close discards a document together with its session, highlights and
// rendered surfaces.
func (s *DocumentService) Close(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("document.close", start, err) }()

	if err = s.docSvc.Close(ctx, id); err != nil {
		return fmt.Errorf("close document: %w", err)
	}
	s.viewSvc.Drop(id)
	return nil
}

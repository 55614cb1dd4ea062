package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/leitor-app/leitor/internal/domain"
	domdoc "github.com/leitor-app/leitor/internal/domain/document"
	domsess "github.com/leitor-app/leitor/internal/domain/session"
)

// --- Mocks ---

type stubHandle struct {
	numPages int
}

func (h *stubHandle) NumPages() int { return h.numPages }

func (h *stubHandle) RenderPage(_ context.Context, page int, scale float64) (domain.Surface, error) {
	return domain.Surface{Page: page, Scale: scale}, nil
}

type mockRenderer struct {
	handle  domain.DocumentHandle
	openErr error
	payload []byte
}

func (m *mockRenderer) Open(payload []byte) (domain.DocumentHandle, error) {
	m.payload = payload
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.handle, nil
}

type mockRepo struct {
	saved     domdoc.Document
	handle    domain.DocumentHandle
	getResult domdoc.Document
	getErr    error
	saveErr   error
	deleteErr error
	deletedID string
}

func (m *mockRepo) Save(_ context.Context, doc domdoc.Document, h domain.DocumentHandle) error {
	m.saved = doc
	m.handle = h
	return m.saveErr
}

func (m *mockRepo) Get(_ context.Context, _ string) (domdoc.Document, error) {
	return m.getResult, m.getErr
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	m.deletedID = id
	return m.deleteErr
}

type mockSessions struct {
	saved     *domsess.Session
	deletedID string
	saveErr   error
}

func (m *mockSessions) Save(_ context.Context, s domsess.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &s
	return nil
}

func (m *mockSessions) DeleteByDocument(_ context.Context, documentID string) error {
	m.deletedID = documentID
	return nil
}

type mockPurger struct {
	deletedID string
}

func (m *mockPurger) DeleteByDocument(_ context.Context, documentID string) error {
	m.deletedID = documentID
	return nil
}

// --- Tests ---

func TestOpen_Success(t *testing.T) {
	repo := &mockRepo{}
	sessions := &mockSessions{}
	renderer := &mockRenderer{handle: &stubHandle{numPages: 42}}
	svc := New(repo, sessions, &mockPurger{}, renderer)

	payload := []byte("%PDF-1.4 fake payload")
	doc, err := svc.Open(context.Background(), "artigo.pdf", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() == "" {
		t.Error("expected a fresh document ID")
	}
	if doc.Name() != "artigo.pdf" {
		t.Errorf("expected name artigo.pdf, got %q", doc.Name())
	}
	if doc.NumPages() != 42 {
		t.Errorf("expected 42 pages, got %d", doc.NumPages())
	}
	if doc.Size() != int64(len(payload)) {
		t.Errorf("expected size %d, got %d", len(payload), doc.Size())
	}
	if !bytes.Equal(renderer.payload, payload) {
		t.Error("payload should be handed to the renderer unchanged")
	}
	if repo.saved.ID() != doc.ID() {
		t.Error("document not persisted")
	}

	// A fresh session starts at page 1, scale 1.0, single mode
	if sessions.saved == nil {
		t.Fatal("session not created")
	}
	view := sessions.saved.View()
	if view.CurrentPage() != 1 {
		t.Errorf("expected page 1, got %d", view.CurrentPage())
	}
	if view.Scale() != 1.0 {
		t.Errorf("expected scale 1.0, got %g", view.Scale())
	}
	if sessions.saved.DocumentID() != doc.ID() {
		t.Error("session should reference the new document")
	}
}

func TestOpen_EmptyPayload(t *testing.T) {
	svc := New(&mockRepo{}, &mockSessions{}, &mockPurger{}, &mockRenderer{})

	_, err := svc.Open(context.Background(), "artigo.pdf", nil)
	if !errors.Is(err, domain.ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestOpen_PayloadTooLarge(t *testing.T) {
	svc := New(&mockRepo{}, &mockSessions{}, &mockPurger{}, &mockRenderer{})

	_, err := svc.Open(context.Background(), "artigo.pdf", make([]byte, domdoc.MaxPayloadSize+1))
	if !errors.Is(err, domain.ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestOpen_RendererRejects(t *testing.T) {
	renderer := &mockRenderer{openErr: fmt.Errorf("not a pdf: %w", domain.ErrInvalidDocument)}
	repo := &mockRepo{}
	svc := New(repo, &mockSessions{}, &mockPurger{}, renderer)

	_, err := svc.Open(context.Background(), "notas.txt", []byte("plain text"))
	if !errors.Is(err, domain.ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
	if repo.saved.ID() != "" {
		t.Error("rejected document should not be persisted")
	}
}

func TestGet_Success(t *testing.T) {
	doc := makeDocument(t, "doc-1")
	repo := &mockRepo{getResult: doc}
	svc := New(repo, &mockSessions{}, &mockPurger{}, &mockRenderer{})

	got, err := svc.Get(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID() != "doc-1" {
		t.Errorf("expected doc-1, got %q", got.ID())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockRepo{getErr: domain.ErrDocumentNotFound}
	svc := New(repo, &mockSessions{}, &mockPurger{}, &mockRenderer{})

	_, err := svc.Get(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestClose_Cascades(t *testing.T) {
	repo := &mockRepo{}
	sessions := &mockSessions{}
	purger := &mockPurger{}
	svc := New(repo, sessions, purger, &mockRenderer{})

	if err := svc.Close(context.Background(), "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deletedID != "doc-1" {
		t.Error("document not deleted")
	}
	if sessions.deletedID != "doc-1" {
		t.Error("session not deleted")
	}
	if purger.deletedID != "doc-1" {
		t.Error("highlights not purged")
	}
}

func TestClose_NotFound(t *testing.T) {
	repo := &mockRepo{deleteErr: domain.ErrDocumentNotFound}
	svc := New(repo, &mockSessions{}, &mockPurger{}, &mockRenderer{})

	err := svc.Close(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func makeDocument(t *testing.T, id string) domdoc.Document {
	t.Helper()
	doc, err := domdoc.New(id, "artigo.pdf", 1024, 5, time.Now())
	if err != nil {
		t.Fatalf("domdoc.New: %v", err)
	}
	return doc
}

package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/leitor-app/leitor/internal/domain"
	domsess "github.com/leitor-app/leitor/internal/domain/session"
	domview "github.com/leitor-app/leitor/internal/domain/viewer"
)

// --- Mocks ---

type mockSessions struct {
	mu      sync.Mutex
	session domsess.Session
	getErr  error
}

func (m *mockSessions) GetByDocument(_ context.Context, _ string) (domsess.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return domsess.Session{}, m.getErr
	}
	return m.session, nil
}

func (m *mockSessions) Save(_ context.Context, s domsess.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	return nil
}

type stubHandle struct {
	mu       sync.Mutex
	numPages int
	rendered []int
	failPage int
}

func (h *stubHandle) NumPages() int { return h.numPages }

func (h *stubHandle) RenderPage(_ context.Context, page int, scale float64) (domain.Surface, error) {
	h.mu.Lock()
	h.rendered = append(h.rendered, page)
	h.mu.Unlock()
	if page == h.failPage {
		return domain.Surface{}, fmt.Errorf("render page %d: broken content stream", page)
	}
	return domain.Surface{Page: page, Scale: scale, Width: 612 * scale, Height: 792 * scale}, nil
}

type mockDocs struct {
	handle domain.DocumentHandle
	err    error
}

func (m *mockDocs) Handle(_ context.Context, _ string) (domain.DocumentHandle, error) {
	return m.handle, m.err
}

func makeService(t *testing.T, numPages int) (*Service, *mockSessions, *stubHandle) {
	t.Helper()
	view, err := domview.New(numPages, domview.DefaultBounds())
	if err != nil {
		t.Fatalf("domview.New: %v", err)
	}
	sess, err := domsess.New("sess-1", "doc-1", view)
	if err != nil {
		t.Fatalf("domsess.New: %v", err)
	}
	sessions := &mockSessions{session: sess}
	handle := &stubHandle{numPages: numPages}
	return New(sessions, &mockDocs{handle: handle}), sessions, handle
}

// --- Tests ---

func TestView_NoRerender(t *testing.T) {
	svc, _, handle := makeService(t, 10)

	view, surfaces, err := svc.View(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CurrentPage() != 1 {
		t.Errorf("expected page 1, got %d", view.CurrentPage())
	}
	if len(handle.rendered) != 0 {
		t.Error("View should not trigger a re-render")
	}
	if len(surfaces) != 0 {
		t.Errorf("expected no surfaces before the first transition, got %d", len(surfaces))
	}
}

func TestNext_RendersVisiblePage(t *testing.T) {
	svc, sessions, handle := makeService(t, 10)

	view, surfaces, err := svc.Next(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CurrentPage() != 2 {
		t.Errorf("expected page 2, got %d", view.CurrentPage())
	}
	if sessions.session.View().CurrentPage() != 2 {
		t.Error("session not persisted")
	}
	if len(handle.rendered) != 1 || handle.rendered[0] != 2 {
		t.Errorf("expected page 2 rendered, got %v", handle.rendered)
	}
	if len(surfaces) != 1 || surfaces[0].Page != 2 {
		t.Errorf("expected one surface for page 2, got %v", surfaces)
	}
}

func TestNext_ClampsAtLastPage(t *testing.T) {
	svc, _, _ := makeService(t, 1)

	view, _, err := svc.Next(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CurrentPage() != 1 {
		t.Errorf("expected clamp at page 1, got %d", view.CurrentPage())
	}
}

func TestPrev_ClampsAtFirstPage(t *testing.T) {
	svc, _, _ := makeService(t, 10)

	view, _, err := svc.Prev(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CurrentPage() != 1 {
		t.Errorf("expected clamp at page 1, got %d", view.CurrentPage())
	}
}

func TestGoTo_Clamps(t *testing.T) {
	svc, _, _ := makeService(t, 10)

	view, _, err := svc.GoTo(context.Background(), "doc-1", 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CurrentPage() != 10 {
		t.Errorf("expected clamp at page 10, got %d", view.CurrentPage())
	}

	view, _, err = svc.GoTo(context.Background(), "doc-1", -3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CurrentPage() != 1 {
		t.Errorf("expected clamp at page 1, got %d", view.CurrentPage())
	}
}

func TestZoom_RendersAtNewScale(t *testing.T) {
	svc, _, _ := makeService(t, 10)

	view, surfaces, err := svc.ZoomIn(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Scale() != 1.1 {
		t.Errorf("expected scale 1.1, got %g", view.Scale())
	}
	if len(surfaces) != 1 || surfaces[0].Scale != 1.1 {
		t.Errorf("surface should carry the new scale, got %v", surfaces)
	}

	view, _, err = svc.ZoomOut(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Scale() != 1.0 {
		t.Errorf("expected scale 1.0, got %g", view.Scale())
	}
}

func TestSetMode_Double_RendersPair(t *testing.T) {
	svc, _, handle := makeService(t, 10)

	view, surfaces, err := svc.SetMode(context.Background(), "doc-1", domview.Double)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Mode() != domview.Double {
		t.Errorf("expected double mode, got %q", view.Mode())
	}
	if len(surfaces) != 2 {
		t.Fatalf("expected 2 surfaces, got %d", len(surfaces))
	}
	if surfaces[0].Page != 1 || surfaces[1].Page != 2 {
		t.Errorf("expected pages 1 and 2, got %d and %d", surfaces[0].Page, surfaces[1].Page)
	}
	if len(handle.rendered) != 2 {
		t.Errorf("expected 2 renders, got %v", handle.rendered)
	}
}

func TestSetMode_Double_LastPageAlone(t *testing.T) {
	svc, _, _ := makeService(t, 3)

	if _, _, err := svc.SetMode(context.Background(), "doc-1", domview.Double); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	view, surfaces, err := svc.GoTo(context.Background(), "doc-1", 3)
	if err != nil {
		t.Fatalf("GoTo: %v", err)
	}
	if view.CurrentPage() != 3 {
		t.Errorf("expected page 3, got %d", view.CurrentPage())
	}
	if len(surfaces) != 1 || surfaces[0].Page != 3 {
		t.Errorf("last page should show alone, got %v", surfaces)
	}
}

func TestSetMode_Invalid(t *testing.T) {
	svc, _, _ := makeService(t, 10)

	_, _, err := svc.SetMode(context.Background(), "doc-1", "triple")
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestTransition_RenderFailureLeavesSlotEmpty(t *testing.T) {
	view, err := domview.New(10, domview.DefaultBounds())
	if err != nil {
		t.Fatalf("domview.New: %v", err)
	}
	sess, err := domsess.New("sess-1", "doc-1", view)
	if err != nil {
		t.Fatalf("domsess.New: %v", err)
	}
	sessions := &mockSessions{session: sess}
	handle := &stubHandle{numPages: 10, failPage: 2}
	svc := New(sessions, &mockDocs{handle: handle})

	if _, _, err := svc.SetMode(context.Background(), "doc-1", domview.Double); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	_, surfaces, err := svc.View(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	// The transition still succeeds; only the failed slot is dropped
	if len(surfaces) != 1 || surfaces[0].Page != 1 {
		t.Errorf("expected only page 1 surface, got %v", surfaces)
	}
	if sessions.session.View().Mode() != domview.Double {
		t.Error("view transition should persist despite the failed render")
	}
}

func TestTransition_SessionMissing(t *testing.T) {
	sessions := &mockSessions{getErr: domain.ErrSessionNotFound}
	svc := New(sessions, &mockDocs{handle: &stubHandle{numPages: 1}})

	_, _, err := svc.Next(context.Background(), "doc-1")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestTransition_HandleMissing(t *testing.T) {
	view, err := domview.New(5, domview.DefaultBounds())
	if err != nil {
		t.Fatalf("domview.New: %v", err)
	}
	sess, err := domsess.New("sess-1", "doc-1", view)
	if err != nil {
		t.Fatalf("domsess.New: %v", err)
	}
	sessions := &mockSessions{session: sess}
	svc := New(sessions, &mockDocs{err: domain.ErrDocumentNotFound})

	_, _, err = svc.Next(context.Background(), "doc-1")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDrop_ReleasesSurfaces(t *testing.T) {
	svc, _, _ := makeService(t, 10)

	if _, _, err := svc.Next(context.Background(), "doc-1"); err != nil {
		t.Fatalf("Next: %v", err)
	}
	svc.Drop("doc-1")

	_, surfaces, err := svc.View(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(surfaces) != 0 {
		t.Errorf("expected no surfaces after Drop, got %d", len(surfaces))
	}
}

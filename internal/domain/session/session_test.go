package session

import (
	"testing"

	"github.com/leitor-app/leitor/internal/domain/dictionary"
	"github.com/leitor-app/leitor/internal/domain/viewer"
)

func makeSession(t *testing.T) Session {
	t.Helper()
	view, err := viewer.New(10, viewer.DefaultBounds())
	if err != nil {
		t.Fatalf("viewer.New: %v", err)
	}
	s, err := New("sess-1", "doc-1", view)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew_Invalid(t *testing.T) {
	view, _ := viewer.New(1, viewer.DefaultBounds())
	if _, err := New("", "doc-1", view); err == nil {
		t.Error("expected error for missing session ID")
	}
	if _, err := New("sess-1", "", view); err == nil {
		t.Error("expected error for missing document ID")
	}
}

func TestNewSelection(t *testing.T) {
	sel, err := NewSelection("uma casa", 3)
	if err != nil {
		t.Fatalf("NewSelection: %v", err)
	}
	if sel.Text() != "uma casa" || sel.Page() != 3 {
		t.Errorf("selection = %q page %d", sel.Text(), sel.Page())
	}
	if sel.IsEmpty() {
		t.Error("IsEmpty = true for a populated selection")
	}

	if _, err := NewSelection("", 1); err == nil {
		t.Error("expected error for empty text")
	}
	if _, err := NewSelection("   ", 1); err == nil {
		t.Error("expected error for whitespace-only text")
	}
	if _, err := NewSelection("x", 0); err == nil {
		t.Error("expected error for page < 1")
	}
}

func TestSelectionLifecycle(t *testing.T) {
	s := makeSession(t)

	if !s.Selection().IsEmpty() {
		t.Error("fresh session must have no selection")
	}

	sel, _ := NewSelection("trecho", 2)
	s = s.WithSelection(sel)
	if s.Selection().Text() != "trecho" {
		t.Errorf("selection = %q", s.Selection().Text())
	}

	s = s.WithoutSelection()
	if !s.Selection().IsEmpty() {
		t.Error("selection not cleared")
	}
}

func TestPanelLifecycle(t *testing.T) {
	s := makeSession(t)

	if _, ok := s.Panel(); ok {
		t.Error("fresh session must have no dictionary panel")
	}

	s = s.WithPanel(dictionary.New("casa", "moradia", nil))
	panel, ok := s.Panel()
	if !ok || panel.Word() != "casa" {
		t.Errorf("panel = %v ok=%v", panel, ok)
	}

	// Replaced wholesale by the next lookup
	s = s.WithPanel(dictionary.NotFound("xyzzy"))
	panel, _ = s.Panel()
	if panel.Word() != "xyzzy" || !panel.IsNotFound() {
		t.Errorf("panel after replace = %v", panel)
	}

	s = s.WithoutPanel()
	if _, ok := s.Panel(); ok {
		t.Error("panel not cleared")
	}
}

func TestLookupInFlight(t *testing.T) {
	s := makeSession(t)

	if s.LookupInFlight() {
		t.Error("fresh session must not have a lookup in flight")
	}
	s = s.WithLookupInFlight(true)
	if !s.LookupInFlight() {
		t.Error("flag not set")
	}
	s = s.WithLookupInFlight(false)
	if s.LookupInFlight() {
		t.Error("flag not cleared")
	}
}

func TestWithView(t *testing.T) {
	s := makeSession(t)
	next := s.View().Next()

	s = s.WithView(next)
	if s.View().CurrentPage() != 2 {
		t.Errorf("view page = %d, want 2", s.View().CurrentPage())
	}
}

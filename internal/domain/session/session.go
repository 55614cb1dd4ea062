// Package session models one reading session: the per-document view state,
// the active text selection, and the dictionary panel. All of it is
// process-lifetime state, discarded when the document is closed or the
// service restarts.
package session

import (
	"fmt"
	"strings"

	"github.com/leitor-app/leitor/internal/domain/dictionary"
	"github.com/leitor-app/leitor/internal/domain/viewer"
)

// Selection is the active text selection, the precondition for highlight
// and lookup actions.
type Selection struct {
	text string
	page int
}

// NewSelection validates and creates a selection. Whitespace-only text is
// rejected up front so a stored selection is always usable for a highlight.
func NewSelection(text string, page int) (Selection, error) {
	if strings.TrimSpace(text) == "" {
		return Selection{}, fmt.Errorf("selection text is required")
	}
	if page < 1 {
		return Selection{}, fmt.Errorf("selection page must be >= 1, got %d", page)
	}
	return Selection{text: text, page: page}, nil
}

// Text returns the selected text span.
func (s Selection) Text() string { return s.text }

// Page returns the 1-based page the selection was made on.
func (s Selection) Page() int { return s.page }

// IsEmpty reports whether there is no active selection.
func (s Selection) IsEmpty() bool { return s.text == "" }

// Session is the reading session aggregate (immutable value object).
type Session struct {
	id             string
	documentID     string
	view           viewer.State
	selection      Selection
	panel          dictionary.Result
	hasPanel       bool
	lookupInFlight bool
}

// New creates a session for a freshly opened document.
func New(id, documentID string, view viewer.State) (Session, error) {
	if id == "" {
		return Session{}, fmt.Errorf("session ID is required")
	}
	if documentID == "" {
		return Session{}, fmt.Errorf("document ID is required")
	}
	return Session{id: id, documentID: documentID, view: view}, nil
}

// ID returns the session identifier.
func (s Session) ID() string { return s.id }

// DocumentID returns the owning document identifier.
func (s Session) DocumentID() string { return s.documentID }

// View returns the view state.
func (s Session) View() viewer.State { return s.view }

// Selection returns the active selection (possibly empty).
func (s Session) Selection() Selection { return s.selection }

// Panel returns the dictionary panel content and whether one is present.
func (s Session) Panel() (dictionary.Result, bool) { return s.panel, s.hasPanel }

// LookupInFlight reports whether a lookup is pending for this session.
func (s Session) LookupInFlight() bool { return s.lookupInFlight }

// WithView returns a copy with the view state replaced.
func (s Session) WithView(v viewer.State) Session {
	c := s
	c.view = v
	return c
}

// WithSelection returns a copy with the active selection replaced.
func (s Session) WithSelection(sel Selection) Session {
	c := s
	c.selection = sel
	return c
}

// WithoutSelection returns a copy with the active selection cleared.
func (s Session) WithoutSelection() Session {
	c := s
	c.selection = Selection{}
	return c
}

// WithPanel returns a copy with the dictionary panel replaced wholesale.
func (s Session) WithPanel(r dictionary.Result) Session {
	c := s
	c.panel = r
	c.hasPanel = true
	return c
}

// WithoutPanel returns a copy with the dictionary panel cleared.
func (s Session) WithoutPanel() Session {
	c := s
	c.panel = dictionary.Result{}
	c.hasPanel = false
	return c
}

// WithLookupInFlight returns a copy with the lookup in-flight flag set.
func (s Session) WithLookupInFlight(inFlight bool) Session {
	c := s
	c.lookupInFlight = inFlight
	return c
}

package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrSessionNotFound signals a missing reading session.
	ErrSessionNotFound = errors.New("reading session not found")
	// ErrHighlightNotFound signals a missing highlight.
	ErrHighlightNotFound = errors.New("highlight not found")
	// ErrInvalidDocument signals a payload the renderer could not open.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrPageOutOfRange signals a page outside [1, numPages].
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrEmptySelection signals a highlight action without an active text selection.
	ErrEmptySelection = errors.New("no active text selection")
	// ErrEmptyNote signals an annotation save with an empty or whitespace-only note.
	ErrEmptyNote = errors.New("annotation note is empty")
	// ErrNotAnnotated signals a comment edit on a highlight that carries no comment.
	ErrNotAnnotated = errors.New("highlight has no annotation to edit")

	// ErrLookupInFlight signals a lookup while another one is still pending for the session.
	ErrLookupInFlight = errors.New("lookup already in flight")
	// ErrLookupProviderError signals a lookup provider failure.
	ErrLookupProviderError = errors.New("lookup provider error")
	// ErrNoDictionaryResult signals an empty dictionary panel.
	ErrNoDictionaryResult = errors.New("no dictionary result")
)

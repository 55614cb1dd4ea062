package leitor

import "github.com/leitor-app/leitor/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDocumentNotFound    = domain.ErrDocumentNotFound
	ErrSessionNotFound     = domain.ErrSessionNotFound
	ErrHighlightNotFound   = domain.ErrHighlightNotFound
	ErrInvalidDocument     = domain.ErrInvalidDocument
	ErrPageOutOfRange      = domain.ErrPageOutOfRange
	ErrEmptySelection      = domain.ErrEmptySelection
	ErrEmptyNote           = domain.ErrEmptyNote
	ErrNotAnnotated        = domain.ErrNotAnnotated
	ErrLookupInFlight      = domain.ErrLookupInFlight
	ErrLookupProviderError = domain.ErrLookupProviderError
	ErrNoDictionaryResult  = domain.ErrNoDictionaryResult
)

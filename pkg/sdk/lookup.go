package leitor

import (
	"context"
	"fmt"
	"time"

	"github.com/leitor-app/leitor/internal/domain/dictionary"
)

// LookupService runs word lookups and keeps the per-session dictionary
// panel for one open document. One lookup at a time per document.
type LookupService struct {
	documentID string
	svc        lookupUseCase
	obs        *observer
}

// Lookup resolves a word or expression and stores the result as the
// document's dictionary panel. While a lookup is pending, further calls
// return ErrLookupInFlight.
func (s *LookupService) Lookup(ctx context.Context, text string) (entry DictionaryEntry, err error) {
	start := time.Now()
	defer func() { s.obs.observe("lookup.lookup", start, err) }()

	result, err := s.svc.Lookup(ctx, s.documentID, text)
	if err != nil {
		return DictionaryEntry{}, fmt.Errorf("lookup: %w", err)
	}
	return fromInternalEntry(result), nil
}

// Panel returns the current dictionary panel, or ErrNoDictionaryResult
// when no lookup has completed yet.
func (s *LookupService) Panel(ctx context.Context) (entry DictionaryEntry, err error) {
	start := time.Now()
	defer func() { s.obs.observe("lookup.panel", start, err) }()

	result, err := s.svc.Panel(ctx, s.documentID)
	if err != nil {
		return DictionaryEntry{}, fmt.Errorf("panel: %w", err)
	}
	return fromInternalEntry(result), nil
}

// Clear empties the dictionary panel.
func (s *LookupService) Clear(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("lookup.clear", start, err) }()

	if err = s.svc.Clear(ctx, s.documentID); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

func fromInternalEntry(r dictionary.Result) DictionaryEntry {
	synonyms := r.Synonyms()
	if synonyms == nil {
		synonyms = []string{}
	}
	return DictionaryEntry{
		Word:     r.Word(),
		Meaning:  r.Meaning(),
		Synonyms: synonyms,
	}
}

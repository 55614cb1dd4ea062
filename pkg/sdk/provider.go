package leitor

import "context"

// LookupProvider resolves a word or expression to a dictionary entry.
// Implementations that cannot find a definition should return the entry
// produced by NotFoundEntry rather than an error; errors are reserved for
// transport failures.
type LookupProvider interface {
	Lookup(ctx context.Context, text string) (DictionaryEntry, error)
}

// NotFoundEntry builds the fallback entry for a word without a definition.
func NotFoundEntry(word string) DictionaryEntry {
	return DictionaryEntry{
		Word:     word,
		Meaning:  "Não foi possível encontrar a definição.",
		Synonyms: []string{},
	}
}

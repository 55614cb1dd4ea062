// Package dictionary holds the word-lookup result model.
package dictionary

// NotFoundMeaning is the fixed fallback shown when the lookup provider
// response cannot be parsed.
const NotFoundMeaning = "Não foi possível encontrar a definição."

// Result is one word-lookup result (immutable value object). Exactly one
// result is live per session at a time; each lookup replaces it wholesale.
type Result struct {
	word     string
	meaning  string
	synonyms []string
}

// New creates a lookup result. Synonym order is relevance order and is
// preserved as received.
func New(word, meaning string, synonyms []string) Result {
	return Result{word: word, meaning: meaning, synonyms: cloneStrings(synonyms)}
}

// NotFound creates the fallback result for an unparseable provider response:
// the original input as the word, the fixed message, no synonyms.
func NotFound(word string) Result {
	return Result{word: word, meaning: NotFoundMeaning, synonyms: []string{}}
}

// Word returns the looked-up word.
func (r Result) Word() string { return r.word }

// Meaning returns the meaning text.
func (r Result) Meaning() string { return r.meaning }

// Synonyms returns the synonyms in relevance order.
func (r Result) Synonyms() []string { return cloneStrings(r.synonyms) }

// IsNotFound reports whether this is the fallback result.
func (r Result) IsNotFound() bool { return r.meaning == NotFoundMeaning }

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	c := make([]string, len(ss))
	copy(c, ss)
	return c
}

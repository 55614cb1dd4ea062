package domain

import (
	"context"

	"github.com/leitor-app/leitor/internal/domain/dictionary"
)

// LookupClient is the word-lookup service contract. A malformed provider
// response is not an error: implementations degrade to the fallback result.
// Transport-level failures are returned wrapped in ErrLookupProviderError.
type LookupClient interface {
	Lookup(ctx context.Context, text string) (dictionary.Result, error)
}

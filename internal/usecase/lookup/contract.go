package lookup

import (
	"context"

	domsess "github.com/leitor-app/leitor/internal/domain/session"
)

// SessionRepository reads and writes reading sessions (for the dictionary
// panel and the in-flight flag). Update applies a read-modify-write
// atomically, which is what makes the in-flight refusal reliable under
// concurrent lookups.
type SessionRepository interface {
	GetByDocument(ctx context.Context, documentID string) (domsess.Session, error)
	Save(ctx context.Context, s domsess.Session) error
	Update(ctx context.Context, documentID string, fn func(domsess.Session) (domsess.Session, error)) error
}

package viewer

import (
	"context"

	"github.com/leitor-app/leitor/internal/domain"
	domsess "github.com/leitor-app/leitor/internal/domain/session"
)

// SessionRepository reads and writes reading sessions.
type SessionRepository interface {
	GetByDocument(ctx context.Context, documentID string) (domsess.Session, error)
	Save(ctx context.Context, s domsess.Session) error
}

// HandleReader resolves the open renderer handle for a document.
type HandleReader interface {
	Handle(ctx context.Context, id string) (domain.DocumentHandle, error)
}

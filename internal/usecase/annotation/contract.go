package annotation

import (
	"context"

	domhl "github.com/leitor-app/leitor/internal/domain/highlight"
	domsess "github.com/leitor-app/leitor/internal/domain/session"
)

// Repository defines the storage contract for highlights.
type Repository interface {
	Add(ctx context.Context, documentID string, h domhl.Highlight) error
	List(ctx context.Context, documentID string) ([]domhl.Highlight, error)
	Get(ctx context.Context, documentID, id string) (domhl.Highlight, error)
	Update(ctx context.Context, documentID string, h domhl.Highlight) error
	Delete(ctx context.Context, documentID, id string) error
}

// SessionRepository reads and writes reading sessions (for the active
// selection).
type SessionRepository interface {
	GetByDocument(ctx context.Context, documentID string) (domsess.Session, error)
	Save(ctx context.Context, s domsess.Session) error
}

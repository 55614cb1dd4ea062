package document

import (
	"context"

	"github.com/leitor-app/leitor/internal/domain"
	domdoc "github.com/leitor-app/leitor/internal/domain/document"
	domsess "github.com/leitor-app/leitor/internal/domain/session"
)

// Repository defines the storage contract for opened documents.
type Repository interface {
	Save(ctx context.Context, doc domdoc.Document, handle domain.DocumentHandle) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Delete(ctx context.Context, id string) error
}

// SessionWriter creates and removes reading sessions.
type SessionWriter interface {
	Save(ctx context.Context, s domsess.Session) error
	DeleteByDocument(ctx context.Context, documentID string) error
}

// HighlightPurger drops a document's highlight collection.
type HighlightPurger interface {
	DeleteByDocument(ctx context.Context, documentID string) error
}

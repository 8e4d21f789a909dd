package ports

import (
	"context"

	"pdfsat/internal/domain"
)

// SessionStore persists the presenter session between runs.
// It is consulted only when a document is loaded and when the presenter
// closes.
type SessionStore interface {
	// Load returns the stored state, or the zero value when nothing is stored
	Load(ctx context.Context) (domain.SessionState, error)
	Save(ctx context.Context, state domain.SessionState) error
	Clear(ctx context.Context) error
	Close() error
}

package documents

import (
	"context"
	"time"
)

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	// UpdateStatus writes a terminal status. The match is scoped by both
	// id and owner email so one user cannot flip another user's records.
	UpdateStatus(ctx context.Context, id, ownerEmail, status, errText string, updatedAt time.Time) error
	// ListByOwner lists a user's documents ordered newest-first.
	ListByOwner(ctx context.Context, ownerEmail string) ([]Document, error)
}

package documents

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of DocumentsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Document // ownerEmail -> documents
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Document),
	}
}

// Create stores a new document for an owner.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.Status == "" {
		doc.Status = StatusPending
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.OwnerEmail] = append(r.data[doc.OwnerEmail], doc)
	return nil
}

// UpdateStatus writes a terminal status for a matching document.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id, ownerEmail, status, errText string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[ownerEmail]
	for i := range docs {
		if docs[i].ID == id {
			docs[i].Status = status
			docs[i].Error = errText
			docs[i].UpdatedAt = updatedAt
			r.data[ownerEmail] = docs
			return nil
		}
	}
	return ErrNotFound
}

// ListByOwner returns an owner's documents, newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	ownerDocs := r.data[ownerEmail]
	r.mu.RUnlock()

	docs := make([]Document, len(ownerDocs))
	copy(docs, ownerDocs)
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

var _ DocumentsRepo = (*MemoryRepo)(nil)

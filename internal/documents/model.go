package documents

import "time"

// Upload statuses. A record starts pending and moves to exactly one of
// the terminal values during confirm.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Document represents one upload attempt owned by a user.
type Document struct {
	ID         string
	OwnerEmail string
	Filename   string
	FileType   string
	SizeBytes  int64
	StorageKey string
	Status     string
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package waitlist

import "context"

// WaitlistRepo defines persistence operations for waitlist entries.
type WaitlistRepo interface {
	Create(ctx context.Context, entry Entry) error
	List(ctx context.Context) ([]Entry, error)
}

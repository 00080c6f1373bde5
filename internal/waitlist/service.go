package waitlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"waitlist-backend/internal/shared/metrics"
)

// Service contains business logic for waitlist signups.
type Service struct {
	Repo WaitlistRepo
}

// NewService constructs a Service.
func NewService(repo WaitlistRepo) *Service {
	return &Service{Repo: repo}
}

// Submit validates and stores a signup.
func (s *Service) Submit(ctx context.Context, entry Entry) (Entry, error) {
	entry.Email = strings.TrimSpace(entry.Email)
	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Email == "" {
		return Entry{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !strings.Contains(entry.Email, "@") {
		return Entry{}, fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}
	if entry.Name == "" {
		return Entry{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if entry.LeadsPerWeek < 0 {
		return Entry{}, fmt.Errorf("%w: leads_per_week must not be negative", ErrInvalidInput)
	}

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()

	if err := s.Repo.Create(ctx, entry); err != nil {
		return Entry{}, err
	}

	metrics.WaitlistSignups.Inc()
	return entry, nil
}

// Entries returns every signup, newest first.
func (s *Service) Entries(ctx context.Context) ([]Entry, error) {
	return s.Repo.List(ctx)
}

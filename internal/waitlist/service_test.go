package waitlist

import (
	"context"
	"errors"
	"testing"
)

func TestSubmitStoresValidEntry(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	entry, err := svc.Submit(context.Background(), Entry{
		Email:        "user@example.com",
		Name:         "Jordan",
		Position:     "Founder",
		LeadsPerWeek: 25,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if entry.ID == "" || entry.CreatedAt.IsZero() {
		t.Fatalf("expected generated id and timestamp, got %+v", entry)
	}

	entries, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Email != "user@example.com" {
		t.Fatalf("unexpected stored entries: %+v", entries)
	}
}

func TestSubmitValidation(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	cases := []Entry{
		{Name: "Jordan"},
		{Email: "not-an-email", Name: "Jordan"},
		{Email: "user@example.com"},
		{Email: "user@example.com", Name: "Jordan", LeadsPerWeek: -1},
	}
	for _, tc := range cases {
		if _, err := svc.Submit(context.Background(), tc); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", tc, err)
		}
	}

	entries, _ := repo.List(context.Background())
	if len(entries) != 0 {
		t.Fatalf("expected no entries after rejected submits, got %d", len(entries))
	}
}

package documents

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"waitlist-backend/internal/shared/metrics"
	"waitlist-backend/internal/shared/storage/object"
	"waitlist-backend/internal/shared/telemetry"
)

// Statuses a client may self-report for one transfer attempt.
const (
	reportedSuccess = "success"
	reportedFailed  = "failed"
)

const errObjectMissing = "file not found in storage"

// FileDescriptor is the client-declared metadata for one requested slot.
type FileDescriptor struct {
	Filename string
	FileType string
	Size     int64
}

// UploadSlot is one issued upload grant.
type UploadSlot struct {
	DocumentID   string
	PresignedURL string
	StorageKey   string
}

// ConfirmOutcome is the client's self-report for one transfer attempt.
type ConfirmOutcome struct {
	DocumentID string
	StorageKey string
	Status     string
	Error      string
}

// ConfirmResult is the server's verdict for one confirmed document.
type ConfirmResult struct {
	DocumentID string
	Status     string
	Error      string
}

// Service orchestrates the two-phase upload protocol.
type Service struct {
	Gateway object.Gateway
	Repo    DocumentsRepo

	// Now is replaceable in tests to pin key timestamps.
	Now func() time.Time
}

// NewService constructs a Service.
func NewService(gw object.Gateway, repo DocumentsRepo) *Service {
	return &Service{Gateway: gw, Repo: repo, Now: time.Now}
}

// RequestUpload issues one upload slot per descriptor: a pending record
// plus a presigned PUT URL. Slot creation fans out per file; any single
// failure fails the whole batch.
func (s *Service) RequestUpload(ctx context.Context, email string, files []FileDescriptor) ([]UploadSlot, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: files are required", ErrInvalidInput)
	}
	for _, f := range files {
		if strings.TrimSpace(f.Filename) == "" {
			return nil, fmt.Errorf("%w: filename is required", ErrInvalidInput)
		}
	}
	if s.Gateway == nil {
		return nil, ErrNotConfigured
	}

	now := s.Now().UTC()
	keys, err := deriveBatchKeys(email, files, now)
	if err != nil {
		return nil, err
	}

	slots := make([]UploadSlot, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i := range files {
		i := i
		g.Go(func() error {
			url, err := s.Gateway.PresignUpload(gctx, keys[i], files[i].FileType)
			if err != nil {
				return fmt.Errorf("presign %s: %w", files[i].Filename, err)
			}

			doc := Document{
				ID:         uuid.NewString(),
				OwnerEmail: email,
				Filename:   files[i].Filename,
				FileType:   files[i].FileType,
				SizeBytes:  files[i].Size,
				StorageKey: keys[i],
				Status:     StatusPending,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := s.Repo.Create(gctx, doc); err != nil {
				return fmt.Errorf("create record %s: %w", files[i].Filename, err)
			}

			slots[i] = UploadSlot{
				DocumentID:   doc.ID,
				PresignedURL: url,
				StorageKey:   keys[i],
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.UploadsRequested.Add(float64(len(slots)))
	return slots, nil
}

// ConfirmUpload records terminal status per reported document. Every
// entry is processed independently; one entry's failure never aborts the
// others. A client-reported success is re-verified against storage before
// it is trusted.
func (s *Service) ConfirmUpload(ctx context.Context, email string, outcomes []ConfirmOutcome) ([]ConfirmResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("%w: documents are required", ErrInvalidInput)
	}

	results := make([]ConfirmResult, len(outcomes))
	var wg sync.WaitGroup
	for i := range outcomes {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.confirmOne(ctx, email, outcomes[i])
		}()
	}
	wg.Wait()

	return results, nil
}

func (s *Service) confirmOne(ctx context.Context, email string, outcome ConfirmOutcome) ConfirmResult {
	status := StatusFailed
	errText := outcome.Error
	if outcome.Status == reportedSuccess {
		if s.Gateway == nil {
			return s.confirmFault(email, outcome, "storage gateway unavailable", ErrNotConfigured)
		}
		exists, err := s.Gateway.Exists(ctx, outcome.StorageKey)
		if err != nil {
			// Can't tell whether the object landed. The record stays
			// pending rather than guessing a terminal status.
			return s.confirmFault(email, outcome, "failed to verify upload", err)
		}
		if exists {
			status = StatusCompleted
			errText = ""
		} else {
			errText = errObjectMissing
		}
	} else if errText == "" {
		errText = "upload failed"
	}

	if err := s.Repo.UpdateStatus(ctx, outcome.DocumentID, email, status, errText, s.Now().UTC()); err != nil {
		return s.confirmFault(email, outcome, "failed to record upload status", err)
	}

	metrics.UploadsConfirmed.WithLabelValues(status).Inc()
	return ConfirmResult{DocumentID: outcome.DocumentID, Status: status, Error: errText}
}

func (s *Service) confirmFault(email string, outcome ConfirmOutcome, msg string, err error) ConfirmResult {
	telemetry.Error("documents.confirm_item_failed", map[string]any{
		"document_id": outcome.DocumentID,
		"owner_email": email,
		"storage_key": outcome.StorageKey,
		"error":       err.Error(),
	})
	return ConfirmResult{DocumentID: outcome.DocumentID, Status: "error", Error: msg}
}

// List returns a user's documents, newest first.
func (s *Service) List(ctx context.Context, email string) ([]Document, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return s.Repo.ListByOwner(ctx, email)
}

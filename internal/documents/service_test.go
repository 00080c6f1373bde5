package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeGateway struct {
	mu      sync.Mutex
	objects map[string]bool
	headErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{objects: make(map[string]bool)}
}

func (g *fakeGateway) PresignUpload(ctx context.Context, storageKey, contentType string) (string, error) {
	return "https://storage.test/" + storageKey + "?sig=abc", nil
}

func (g *fakeGateway) Exists(ctx context.Context, storageKey string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.headErr != nil {
		return false, g.headErr
	}
	return g.objects[storageKey], nil
}

func (g *fakeGateway) PresignTTL() time.Duration { return 15 * time.Minute }

func (g *fakeGateway) put(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects[key] = true
}

func newTestService(gw *fakeGateway) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	svc := NewService(gw, repo)
	svc.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestRequestUploadReturnsOneSlotPerFileWithDistinctKeys(t *testing.T) {
	svc, repo := newTestService(newFakeGateway())

	files := []FileDescriptor{
		{Filename: "report.pdf", FileType: "application/pdf", Size: 100},
		{Filename: "report.pdf", FileType: "application/pdf", Size: 200},
		{Filename: "notes.txt", FileType: "text/plain", Size: 5},
	}
	slots, err := svc.RequestUpload(context.Background(), "user@example.com", files)
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}
	if len(slots) != len(files) {
		t.Fatalf("expected %d slots, got %d", len(files), len(slots))
	}

	seen := make(map[string]bool)
	for _, slot := range slots {
		if slot.DocumentID == "" || slot.PresignedURL == "" || slot.StorageKey == "" {
			t.Fatalf("incomplete slot: %+v", slot)
		}
		if seen[slot.StorageKey] {
			t.Fatalf("duplicate storage key %s", slot.StorageKey)
		}
		seen[slot.StorageKey] = true
	}

	docs, err := repo.ListByOwner(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != len(files) {
		t.Fatalf("expected %d pending records, got %d", len(files), len(docs))
	}
	for _, doc := range docs {
		if doc.Status != StatusPending {
			t.Fatalf("expected pending record, got %s", doc.Status)
		}
	}
}

func TestRequestUploadKeysDifferAcrossRequests(t *testing.T) {
	svc, _ := newTestService(newFakeGateway())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return base }
	first, err := svc.RequestUpload(context.Background(), "user@example.com", []FileDescriptor{{Filename: "report.pdf"}})
	if err != nil {
		t.Fatalf("first request: %v", err)
	}

	svc.Now = func() time.Time { return base.Add(2 * time.Second) }
	second, err := svc.RequestUpload(context.Background(), "user@example.com", []FileDescriptor{{Filename: "report.pdf"}})
	if err != nil {
		t.Fatalf("second request: %v", err)
	}

	if first[0].StorageKey == second[0].StorageKey {
		t.Fatalf("expected distinct keys across requests, got %s twice", first[0].StorageKey)
	}
}

func TestRequestUploadValidation(t *testing.T) {
	svc, repo := newTestService(newFakeGateway())

	if _, err := svc.RequestUpload(context.Background(), "", []FileDescriptor{{Filename: "a.pdf"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing email, got %v", err)
	}
	if _, err := svc.RequestUpload(context.Background(), "user@example.com", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing files, got %v", err)
	}

	docs, _ := repo.ListByOwner(context.Background(), "user@example.com")
	if len(docs) != 0 {
		t.Fatalf("expected no records after rejected requests, got %d", len(docs))
	}
}

func TestConfirmUploadVerifiedSuccessCompletes(t *testing.T) {
	gw := newFakeGateway()
	svc, repo := newTestService(gw)

	slots, err := svc.RequestUpload(context.Background(), "user@example.com", []FileDescriptor{{Filename: "report.pdf"}})
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}
	gw.put(slots[0].StorageKey)

	results, err := svc.ConfirmUpload(context.Background(), "user@example.com", []ConfirmOutcome{
		{DocumentID: slots[0].DocumentID, StorageKey: slots[0].StorageKey, Status: "success"},
	})
	if err != nil {
		t.Fatalf("confirm upload: %v", err)
	}
	if results[0].Status != StatusCompleted {
		t.Fatalf("expected completed, got %+v", results[0])
	}

	docs, _ := repo.ListByOwner(context.Background(), "user@example.com")
	if docs[0].Status != StatusCompleted || docs[0].Error != "" {
		t.Fatalf("expected completed record without error, got %+v", docs[0])
	}
}

func TestConfirmUploadAbsentObjectDowngradesToFailed(t *testing.T) {
	svc, repo := newTestService(newFakeGateway())

	slots, err := svc.RequestUpload(context.Background(), "user@example.com", []FileDescriptor{{Filename: "report.pdf"}})
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}

	results, err := svc.ConfirmUpload(context.Background(), "user@example.com", []ConfirmOutcome{
		{DocumentID: slots[0].DocumentID, StorageKey: slots[0].StorageKey, Status: "success"},
	})
	if err != nil {
		t.Fatalf("confirm upload: %v", err)
	}
	if results[0].Status != StatusFailed {
		t.Fatalf("expected failed, got %+v", results[0])
	}
	if results[0].Error == "" {
		t.Fatalf("expected non-empty error for absent object")
	}

	docs, _ := repo.ListByOwner(context.Background(), "user@example.com")
	if docs[0].Status != StatusFailed {
		t.Fatalf("expected failed record, got %s", docs[0].Status)
	}
	if !strings.Contains(docs[0].Error, "not found") {
		t.Fatalf("expected not-found error text, got %q", docs[0].Error)
	}
}

func TestConfirmUploadIsIdempotentForRepeatedSuccess(t *testing.T) {
	gw := newFakeGateway()
	svc, repo := newTestService(gw)

	slots, err := svc.RequestUpload(context.Background(), "user@example.com", []FileDescriptor{{Filename: "report.pdf"}})
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}
	gw.put(slots[0].StorageKey)

	outcome := []ConfirmOutcome{{DocumentID: slots[0].DocumentID, StorageKey: slots[0].StorageKey, Status: "success"}}
	for i := 0; i < 2; i++ {
		results, err := svc.ConfirmUpload(context.Background(), "user@example.com", outcome)
		if err != nil {
			t.Fatalf("confirm round %d: %v", i, err)
		}
		if results[0].Status != StatusCompleted {
			t.Fatalf("confirm round %d: expected completed, got %+v", i, results[0])
		}
	}

	docs, _ := repo.ListByOwner(context.Background(), "user@example.com")
	if docs[0].Status != StatusCompleted {
		t.Fatalf("expected completed after repeated confirm, got %s", docs[0].Status)
	}
}

type failingOnceRepo struct {
	*MemoryRepo
	failID string
}

func (r *failingOnceRepo) UpdateStatus(ctx context.Context, id, ownerEmail, status, errText string, updatedAt time.Time) error {
	if id == r.failID {
		return fmt.Errorf("write refused")
	}
	return r.MemoryRepo.UpdateStatus(ctx, id, ownerEmail, status, errText, updatedAt)
}

func TestConfirmUploadIsolatesPerItemWriteFailures(t *testing.T) {
	gw := newFakeGateway()
	svc, memory := newTestService(gw)

	slots, err := svc.RequestUpload(context.Background(), "user@example.com", []FileDescriptor{
		{Filename: "a.pdf"},
		{Filename: "b.pdf"},
	})
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}
	gw.put(slots[0].StorageKey)
	gw.put(slots[1].StorageKey)

	svc.Repo = &failingOnceRepo{MemoryRepo: memory, failID: slots[0].DocumentID}

	results, err := svc.ConfirmUpload(context.Background(), "user@example.com", []ConfirmOutcome{
		{DocumentID: slots[0].DocumentID, StorageKey: slots[0].StorageKey, Status: "success"},
		{DocumentID: slots[1].DocumentID, StorageKey: slots[1].StorageKey, Status: "success"},
	})
	if err != nil {
		t.Fatalf("confirm upload: %v", err)
	}

	var failedWrite, persisted ConfirmResult
	for _, r := range results {
		switch r.DocumentID {
		case slots[0].DocumentID:
			failedWrite = r
		case slots[1].DocumentID:
			persisted = r
		}
	}
	if failedWrite.Status != "error" {
		t.Fatalf("expected errored result for refused write, got %+v", failedWrite)
	}
	if persisted.Status != StatusCompleted {
		t.Fatalf("expected sibling entry persisted, got %+v", persisted)
	}

	docs, _ := memory.ListByOwner(context.Background(), "user@example.com")
	for _, doc := range docs {
		if doc.ID == slots[1].DocumentID && doc.Status != StatusCompleted {
			t.Fatalf("expected sibling record completed, got %s", doc.Status)
		}
	}
}

func TestConfirmUploadExistenceFaultLeavesRecordPending(t *testing.T) {
	gw := newFakeGateway()
	gw.headErr = fmt.Errorf("storage unreachable")
	svc, repo := newTestService(gw)

	slots, err := svc.RequestUpload(context.Background(), "user@example.com", []FileDescriptor{{Filename: "report.pdf"}})
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}

	results, err := svc.ConfirmUpload(context.Background(), "user@example.com", []ConfirmOutcome{
		{DocumentID: slots[0].DocumentID, StorageKey: slots[0].StorageKey, Status: "success"},
	})
	if err != nil {
		t.Fatalf("confirm upload: %v", err)
	}
	if results[0].Status != "error" {
		t.Fatalf("expected errored result when existence check faults, got %+v", results[0])
	}

	docs, _ := repo.ListByOwner(context.Background(), "user@example.com")
	if docs[0].Status != StatusPending {
		t.Fatalf("expected record left pending on verification fault, got %s", docs[0].Status)
	}
}

func TestConfirmUploadClientReportedFailureRecordsError(t *testing.T) {
	svc, repo := newTestService(newFakeGateway())

	slots, err := svc.RequestUpload(context.Background(), "user@example.com", []FileDescriptor{{Filename: "report.pdf"}})
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}

	results, err := svc.ConfirmUpload(context.Background(), "user@example.com", []ConfirmOutcome{
		{DocumentID: slots[0].DocumentID, StorageKey: slots[0].StorageKey, Status: "failed", Error: "network reset"},
	})
	if err != nil {
		t.Fatalf("confirm upload: %v", err)
	}
	if results[0].Status != StatusFailed || results[0].Error != "network reset" {
		t.Fatalf("unexpected result: %+v", results[0])
	}

	docs, _ := repo.ListByOwner(context.Background(), "user@example.com")
	if docs[0].Status != StatusFailed || docs[0].Error != "network reset" {
		t.Fatalf("unexpected record: %+v", docs[0])
	}
}

func TestConfirmUploadScopedByOwnerEmail(t *testing.T) {
	gw := newFakeGateway()
	svc, repo := newTestService(gw)

	slots, err := svc.RequestUpload(context.Background(), "owner@example.com", []FileDescriptor{{Filename: "report.pdf"}})
	if err != nil {
		t.Fatalf("request upload: %v", err)
	}
	gw.put(slots[0].StorageKey)

	results, err := svc.ConfirmUpload(context.Background(), "intruder@example.com", []ConfirmOutcome{
		{DocumentID: slots[0].DocumentID, StorageKey: slots[0].StorageKey, Status: "success"},
	})
	if err != nil {
		t.Fatalf("confirm upload: %v", err)
	}
	if results[0].Status != "error" {
		t.Fatalf("expected errored result for wrong owner, got %+v", results[0])
	}

	docs, _ := repo.ListByOwner(context.Background(), "owner@example.com")
	if docs[0].Status != StatusPending {
		t.Fatalf("expected record untouched by wrong owner, got %s", docs[0].Status)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(newFakeGateway(), repo)
	svc.Now = time.Now

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		doc := Document{
			ID:         fmt.Sprintf("doc-%d", i),
			OwnerEmail: "user@example.com",
			Filename:   fmt.Sprintf("file-%d.pdf", i),
			StorageKey: fmt.Sprintf("user/file-%d", i),
			Status:     StatusCompleted,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), doc); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	docs, err := svc.List(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	if docs[0].ID != "doc-2" || docs[2].ID != "doc-0" {
		t.Fatalf("expected newest-first order, got %s .. %s", docs[0].ID, docs[2].ID)
	}
}

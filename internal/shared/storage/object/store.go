package object

import (
	"context"
	"time"
)

// Gateway is the contract the upload orchestrator has with object storage:
// hand out time-boxed pre-authorized write URLs and answer existence checks.
type Gateway interface {
	// PresignUpload returns a signed PUT URL for the given storage key.
	PresignUpload(ctx context.Context, storageKey, contentType string) (string, error)

	// Exists reports whether an object is present at the storage key.
	// A backend "not found" is (false, nil); any other backend fault is
	// returned as an error so callers never mistake "can't tell" for
	// "confirmed absent".
	Exists(ctx context.Context, storageKey string) (bool, error)

	// PresignTTL reports how long issued upload URLs stay valid.
	PresignTTL() time.Duration
}

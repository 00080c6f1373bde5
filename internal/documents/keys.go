package documents

import (
	"fmt"
	"time"

	"waitlist-backend/internal/shared/util"
)

// storageKeyFor derives the storage location for one upload attempt:
// sanitized owner email, request timestamp in millis, sanitized filename.
// The timestamp component keeps repeat uploads of the same name from
// colliding.
func storageKeyFor(ownerEmail, filename string, at time.Time) (string, error) {
	safeEmail, err := util.SanitizeEmailKey(ownerEmail)
	if err != nil {
		return "", err
	}
	safeName, err := util.SanitizeFileName(filename)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%d_%s", safeEmail, at.UnixMilli(), safeName), nil
}

// deriveBatchKeys assigns one storage key per descriptor. Two identical
// filenames inside one batch would land on the same millisecond, so the
// timestamp is bumped until every key in the batch is distinct.
func deriveBatchKeys(ownerEmail string, files []FileDescriptor, now time.Time) ([]string, error) {
	keys := make([]string, len(files))
	seen := make(map[string]struct{}, len(files))
	for i, f := range files {
		at := now
		for {
			key, err := storageKeyFor(ownerEmail, f.Filename, at)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
			}
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				keys[i] = key
				break
			}
			at = at.Add(time.Millisecond)
		}
	}
	return keys, nil
}

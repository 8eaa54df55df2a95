package blobstore

import (
	"context"

	"propmedia/internal/domain/model"
)

// StorageInfo is a best-effort usage/quota estimate. Implementations that
// cannot measure report zeros rather than failing.
type StorageInfo struct {
	UsedBytes  int64 `json:"used_bytes"`
	QuotaBytes int64 `json:"quota_bytes"`
}

// Availability is a non-blocking advisory, not a hard gate. Warning is set
// when the store works but callers should warn users proactively (e.g.
// nearly full, eviction-prone platform tier).
type Availability struct {
	Available bool   `json:"available"`
	Warning   string `json:"warning,omitempty"`
}

// Store is a durable key/value store for large media payloads. Put surfaces
// quota exhaustion as mediaerr.ErrLocalStorageFull and any other I/O
// failure as mediaerr.ErrLocalStorageBlocked, because the caller's
// remediation differs. Delete removes payload and metadata atomically from
// the caller's perspective.
type Store interface {
	Put(ctx context.Context, key string, payload []byte, meta model.BlobMetadata) error
	Get(ctx context.Context, key string) (*model.LocalBlobRecord, error)
	Delete(ctx context.Context, key string) error
	StorageInfo(ctx context.Context) (StorageInfo, error)
	CheckAvailability(ctx context.Context) Availability
}

package blobstore

import (
	"context"
	"fmt"
	"sync"

	"propmedia/internal/domain/mediaerr"
	"propmedia/internal/domain/model"
	"propmedia/internal/domain/repository/blobstore"
)

// MemoryStore mirrors SQLiteStore's semantics in memory, including quota
// enforcement, so invariant tests run without a storage engine. It also
// lets tests force the blocked state.
type MemoryStore struct {
	mu      sync.Mutex
	blobs   map[string]model.LocalBlobRecord
	quota   int64
	blocked bool
}

func NewMemoryStore(quotaBytes int64) *MemoryStore {
	if quotaBytes <= 0 {
		quotaBytes = 2 << 30
	}

	return &MemoryStore{
		blobs: make(map[string]model.LocalBlobRecord),
		quota: quotaBytes,
	}
}

// SetBlocked makes every subsequent operation fail with
// mediaerr.ErrLocalStorageBlocked.
func (s *MemoryStore) SetBlocked(blocked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked = blocked
}

func (s *MemoryStore) Put(_ context.Context, key string, payload []byte, meta model.BlobMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blocked {
		return mediaerr.ErrLocalStorageBlocked
	}

	used := s.usedLocked()
	if old, ok := s.blobs[key]; ok {
		used -= int64(len(old.Payload))
	}
	if used+int64(len(payload)) > s.quota {
		return fmt.Errorf("%w: %d of %d bytes used", mediaerr.ErrLocalStorageFull, used, s.quota)
	}

	s.blobs[key] = model.LocalBlobRecord{
		Key:      key,
		Payload:  append([]byte(nil), payload...),
		Metadata: meta,
	}

	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*model.LocalBlobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blocked {
		return nil, mediaerr.ErrLocalStorageBlocked
	}

	rec, ok := s.blobs[key]
	if !ok {
		return nil, mediaerr.ErrBlobNotFound
	}

	cp := rec
	cp.Payload = append([]byte(nil), rec.Payload...)

	return &cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blocked {
		return mediaerr.ErrLocalStorageBlocked
	}

	if _, ok := s.blobs[key]; !ok {
		return mediaerr.ErrBlobNotFound
	}
	delete(s.blobs, key)

	return nil
}

func (s *MemoryStore) StorageInfo(context.Context) (blobstore.StorageInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return blobstore.StorageInfo{UsedBytes: s.usedLocked(), QuotaBytes: s.quota}, nil
}

func (s *MemoryStore) CheckAvailability(context.Context) blobstore.Availability {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blocked {
		return blobstore.Availability{Available: false, Warning: "local storage is not responding"}
	}

	return blobstore.Availability{Available: true}
}

func (s *MemoryStore) usedLocked() int64 {
	var used int64
	for _, rec := range s.blobs {
		used += int64(len(rec.Payload))
	}

	return used
}

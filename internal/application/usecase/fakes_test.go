package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"propmedia/internal/domain/entity"
	"propmedia/internal/domain/mediaerr"
	"propmedia/internal/domain/model"
	brokerRepo "propmedia/internal/domain/repository/broker"
)

// fakeUploader acknowledges uploads in memory. failKeys maps a key
// substring to the number of attempts that should fail before succeeding;
// a negative count fails forever.
type fakeUploader struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failKeys map[string]int
	calls    []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{
		objects:  make(map[string][]byte),
		failKeys: make(map[string]int),
	}
}

func (u *fakeUploader) UploadObject(_ context.Context, key string, data []byte, _ string) (entity.RemoteObject, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.calls = append(u.calls, key)

	for sub, remaining := range u.failKeys {
		if !strings.Contains(key, sub) {
			continue
		}
		if remaining < 0 {
			return entity.RemoteObject{}, errors.New("connection reset")
		}
		if remaining > 0 {
			u.failKeys[sub] = remaining - 1

			return entity.RemoteObject{}, errors.New("connection reset")
		}
	}

	u.objects[key] = append([]byte(nil), data...)

	return entity.RemoteObject{
		Key:  key,
		URL:  "https://cdn.test/" + key,
		Size: int64(len(data)),
	}, nil
}

func (u *fakeUploader) attemptsFor(keySub string) int {
	u.mu.Lock()
	defer u.mu.Unlock()

	n := 0
	for _, key := range u.calls {
		if strings.Contains(key, keySub) {
			n++
		}
	}

	return n
}

type fakeRemover struct {
	mu      sync.Mutex
	removed []string
}

func (r *fakeRemover) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, key)

	return nil
}

// memCollectionStore is the in-memory collection.Store used by usecase
// tests. saveErr forces the next Save to fail.
type memCollectionStore struct {
	mu      sync.Mutex
	cols    map[string]*model.MediaCollection
	saves   int
	saveErr error
}

func newMemCollectionStore() *memCollectionStore {
	return &memCollectionStore{cols: make(map[string]*model.MediaCollection)}
}

func (s *memCollectionStore) Load(_ context.Context, parentID string) (*model.MediaCollection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.cols[parentID]
	if !ok {
		return model.NewCollection(parentID), nil
	}

	cp := *col
	cp.Items = append([]model.MediaItem(nil), col.Items...)

	return &cp, nil
}

func (s *memCollectionStore) Save(_ context.Context, col *model.MediaCollection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}

	cp := *col
	cp.Items = append([]model.MediaItem(nil), col.Items...)
	s.cols[col.ParentID] = &cp

	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []brokerRepo.Event
}

func (p *fakePublisher) Publish(_ context.Context, event brokerRepo.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

// stubValidator classifies by content type prefix and rejects names listed
// in rejects, mimicking the real validator's error taxonomy without codecs.
type stubValidator struct {
	rejects map[string]mediaerr.ValidationKind
}

func (v *stubValidator) Validate(_ context.Context, f *entity.File) (model.MediaType, error) {
	if kind, ok := v.rejects[f.Name]; ok {
		return "", mediaerr.NewValidation(kind, f.Name, "rejected by test stub")
	}

	switch {
	case strings.HasPrefix(f.ContentType, "image/"):
		return model.MediaTypeImage, nil
	case strings.HasPrefix(f.ContentType, "video/"):
		return model.MediaTypeVideo, nil
	default:
		return "", mediaerr.NewValidation(mediaerr.UnsupportedType, f.Name,
			fmt.Sprintf("unsupported type %s", f.ContentType))
	}
}

type stubCompressor struct{}

func (stubCompressor) Compress(_ context.Context, f *entity.File, _ model.MediaType) *entity.File {
	return f
}

// stubThumbnailer returns a tiny fixed payload, or fails for names in
// failFor.
type stubThumbnailer struct {
	failFor map[string]bool
}

func (t *stubThumbnailer) Generate(_ context.Context, f *entity.File, _ model.MediaType) (*entity.File, error) {
	if t.failFor[f.Name] {
		return nil, errors.New("decode failed")
	}

	return &entity.File{
		Name:        f.Name + "_thumb.jpg",
		ContentType: "image/jpeg",
		Size:        4,
		Data:        []byte{0xff, 0xd8, 0xff, 0xd9},
	}, nil
}

package usecase

import (
	"context"
	"errors"

	"propmedia/internal/domain/dto"
	"propmedia/internal/domain/mediaerr"
	"propmedia/internal/domain/model"
	brokerRepo "propmedia/internal/domain/repository/broker"
	"propmedia/internal/domain/repository/blobstore"
	"propmedia/internal/domain/repository/collection"
	"propmedia/pkg/logger"
)

// Collection implements the explicit user actions on a record's media.
// Every mutation follows the same shape: lock the record, load, mutate in
// memory, save, then run best-effort side effects (blob cleanup, events).
type Collection struct {
	collections collection.Store
	blobs       blobstore.Store
	publisher   brokerRepo.Publisher
	locks       *RecordLocks
}

func NewCollection(collections collection.Store, blobs blobstore.Store,
	publisher brokerRepo.Publisher, locks *RecordLocks,
) *Collection {
	return &Collection{
		collections: collections,
		blobs:       blobs,
		publisher:   publisher,
		locks:       locks,
	}
}

func (c *Collection) List(ctx context.Context, parentID string) (*model.MediaCollection, error) {
	return c.collections.Load(ctx, parentID)
}

// RemoveItem deletes the item from the collection and persists the result.
// Blob and object deletion happen only after the save succeeds and are
// best-effort: an orphaned payload is preferable to a dangling reference.
func (c *Collection) RemoveItem(ctx context.Context, parentID, mediaID string) (dto.RemoveResult, error) {
	unlock := c.locks.Lock(parentID)
	defer unlock()

	col, err := c.collections.Load(ctx, parentID)
	if err != nil {
		return dto.RemoveResult{}, err
	}

	removed, newCover, err := col.Remove(mediaID)
	if err != nil {
		return dto.RemoveResult{}, err
	}

	if err := c.collections.Save(ctx, col); err != nil {
		return dto.RemoveResult{}, err
	}

	c.cleanupPayload(ctx, &removed)
	c.publish(ctx, brokerRepo.EventMediaRemoved, parentID, mediaID)

	result := dto.RemoveResult{}
	if newCover != nil {
		result.NewCoverURL = newCover.DisplayURL()
	}

	return result, nil
}

func (c *Collection) SetCover(ctx context.Context, parentID, mediaID string) error {
	unlock := c.locks.Lock(parentID)
	defer unlock()

	col, err := c.collections.Load(ctx, parentID)
	if err != nil {
		return err
	}

	if err := col.SetCover(mediaID); err != nil {
		return err
	}

	return c.collections.Save(ctx, col)
}

func (c *Collection) Reorder(ctx context.Context, parentID string, order []string) error {
	unlock := c.locks.Lock(parentID)
	defer unlock()

	col, err := c.collections.Load(ctx, parentID)
	if err != nil {
		return err
	}

	if err := col.Reorder(order); err != nil {
		return err
	}

	return c.collections.Save(ctx, col)
}

// cleanupPayload removes the stored bytes of a deleted item. Failures are
// logged and swallowed; the collection no longer references the payload.
func (c *Collection) cleanupPayload(ctx context.Context, item *model.MediaItem) {
	switch item.Storage {
	case model.StorageLocal:
		if item.LocalKey == "" {
			return
		}
		if err := c.blobs.Delete(ctx, item.LocalKey); err != nil && !errors.Is(err, mediaerr.ErrBlobNotFound) {
			logger.Warn("local blob cleanup failed", "key", item.LocalKey, "err", err)
		}

	case model.StorageRemote:
		// Remote originals and thumbnails are keyed under the upload
		// prefix; removal by full URL is not possible, so remote cleanup
		// is delegated to a storage lifecycle rule. Only locally held
		// payloads are reclaimed eagerly.
	}
}

func (c *Collection) publish(ctx context.Context, event, parentID, mediaID string) {
	if c.publisher == nil {
		return
	}

	err := c.publisher.Publish(ctx, brokerRepo.Event{
		Name:     event,
		ParentID: parentID,
		MediaID:  mediaID,
	})
	if err != nil {
		logger.Warn("event publish failed", "event", event, "media", mediaID, "err", err)
	}
}

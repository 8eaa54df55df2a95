package usecase

import (
	"context"
	"errors"

	"propmedia/internal/domain/dto"
	"propmedia/internal/domain/entity"
	"propmedia/internal/domain/mediaerr"
	"propmedia/internal/domain/model"
	brokerRepo "propmedia/internal/domain/repository/broker"
	"propmedia/internal/domain/repository/collection"
	"propmedia/internal/domain/repository/processing"
	"propmedia/internal/metrics"
	"propmedia/pkg/logger"
)

// Ingester runs the per-file pipeline validate → compress → thumbnail →
// store, then integrates the stored items into the record's collection and
// persists it once. Files are processed one at a time to bound codec
// memory pressure and keep backoff predictable per item; items land in
// submission order, failed files are skipped without a placeholder.
type Ingester struct {
	validator   processing.Validator
	compressor  processing.Compressor
	thumbnailer processing.Thumbnailer
	router      *StorageRouter
	collections collection.Store
	publisher   brokerRepo.Publisher
	locks       *RecordLocks
}

func NewIngester(validator processing.Validator, compressor processing.Compressor,
	thumbnailer processing.Thumbnailer, router *StorageRouter,
	collections collection.Store, publisher brokerRepo.Publisher, locks *RecordLocks,
) *Ingester {
	return &Ingester{
		validator:   validator,
		compressor:  compressor,
		thumbnailer: thumbnailer,
		router:      router,
		collections: collections,
		publisher:   publisher,
		locks:       locks,
	}
}

func (in *Ingester) Ingest(ctx context.Context, files []entity.File, parentID, userID string,
	promoteFirstImage bool,
) (dto.IngestResult, error) {
	unlock := in.locks.Lock(parentID)
	defer unlock()

	col, err := in.collections.Load(ctx, parentID)
	if err != nil {
		return dto.IngestResult{}, err
	}

	result := dto.IngestResult{
		StoredItems: []model.MediaItem{},
		Failures:    []dto.IngestFailure{},
	}

	for i := range files {
		item, err := in.processOne(ctx, &files[i], parentID, userID)
		if err != nil {
			result.Failures = append(result.Failures, dto.IngestFailure{
				FileName: files[i].Name,
				Reason:   err.Error(),
			})

			continue
		}

		col.Add(*item, promoteFirstImage)
		// Add may have promoted the item; report the cover state the
		// collection actually holds.
		result.StoredItems = append(result.StoredItems, col.Items[len(col.Items)-1])
	}

	if len(result.StoredItems) > 0 {
		if err := in.collections.Save(ctx, col); err != nil {
			return dto.IngestResult{}, err
		}

		in.publish(ctx, brokerRepo.EventMediaIngested, parentID, result.StoredItems)
	}

	return result, nil
}

// processOne runs the sequential chain for a single file. A validation
// reject or storage failure fails only this file; the batch continues.
func (in *Ingester) processOne(ctx context.Context, f *entity.File,
	parentID, userID string,
) (*model.MediaItem, error) {
	kind, err := in.validator.Validate(ctx, f)
	if err != nil {
		metrics.IngestFailures.WithLabelValues("validate").Inc()

		return nil, err
	}

	compressed := in.compressor.Compress(ctx, f, kind)

	thumbnail, err := in.thumbnailer.Generate(ctx, compressed, kind)
	if err != nil {
		// Thumbnail failure never fails the upload; the item proceeds
		// without one and consumers fall back to a placeholder.
		logger.Warn("thumbnail generation failed", "file", f.Name, "err", err)
		metrics.ThumbnailFailures.Inc()
		thumbnail = nil
	}

	item, err := in.router.Store(ctx, entity.ProcessedFile{
		Original:  *compressed,
		Thumbnail: thumbnail,
		Type:      kind,
	}, parentID, userID, nil)
	if err != nil {
		logger.Error("storage failed", "file", f.Name, "err", err)
		metrics.IngestFailures.WithLabelValues(storeFailureStage(err)).Inc()

		return nil, err
	}

	return item, nil
}

func (in *Ingester) publish(ctx context.Context, event, parentID string, items []model.MediaItem) {
	if in.publisher == nil {
		return
	}

	for i := range items {
		err := in.publisher.Publish(ctx, brokerRepo.Event{
			Name:     event,
			ParentID: parentID,
			MediaID:  items[i].ID,
		})
		if err != nil {
			logger.Warn("event publish failed", "event", event, "media", items[i].ID, "err", err)

			return
		}
	}
}

func storeFailureStage(err error) string {
	if errors.Is(err, mediaerr.ErrLocalStorageFull) || errors.Is(err, mediaerr.ErrLocalStorageBlocked) {
		return "local_store"
	}

	return "remote_store"
}

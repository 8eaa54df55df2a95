package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"propmedia/internal/domain/entity"
	"propmedia/internal/domain/mediaerr"
	"propmedia/internal/domain/model"
	"propmedia/internal/domain/repository/blobstore"
	"propmedia/internal/domain/repository/objectstore"
	"propmedia/internal/metrics"
	"propmedia/pkg/logger"
	"propmedia/pkg/retry"
	"propmedia/pkg/utils"
)

// StorageRouter decides the destination tier for a processed file and
// performs the write: images go to remote object storage behind the retry
// policy, videos to the local blob store (no retry, quota errors are
// surfaced as-is). Thumbnails are always remote; they are cheap and served
// best from a CDN path. All-or-nothing per item: on failure no MediaItem
// exists anywhere.
type StorageRouter struct {
	objects       objectstore.Uploader
	objectRemover objectstore.Remover
	blobs         blobstore.Store
	policy        retry.Policy
}

func NewStorageRouter(objects objectstore.Uploader, objectRemover objectstore.Remover,
	blobs blobstore.Store, policy retry.Policy,
) *StorageRouter {
	return &StorageRouter{
		objects:       objects,
		objectRemover: objectRemover,
		blobs:         blobs,
		policy:        policy,
	}
}

// defaultTier routes by media type economics: images are small after
// compression and benefit from CDN delivery, videos are large and stay
// on-device.
func defaultTier(kind model.MediaType) model.StorageType {
	if kind == model.MediaTypeVideo {
		return model.StorageLocal
	}

	return model.StorageRemote
}

// Store persists pf and returns the resulting MediaItem. Each call mints a
// fresh identifier; callers must not invoke it twice for one logical
// upload. destination overrides the default tier when non-nil.
func (r *StorageRouter) Store(ctx context.Context, pf entity.ProcessedFile,
	parentID, userID string, destination *model.StorageType,
) (*model.MediaItem, error) {
	tier := defaultTier(pf.Type)
	if destination != nil {
		tier = *destination
	}

	id := uuid.New().String()
	keyPrefix := fmt.Sprintf("users/%s/records/%s", userID, parentID)

	thumbnailURL := r.storeThumbnail(ctx, pf, keyPrefix, id)

	item := model.MediaItem{
		ID:           id,
		Type:         pf.Type,
		Storage:      tier,
		ThumbnailURL: thumbnailURL,
		FileName:     pf.Original.Name,
		FileSize:     pf.Original.Size,
		FileType:     pf.Original.ContentType,
		UploadedAt:   time.Now().UTC(),
	}

	switch tier {
	case model.StorageRemote:
		key := fmt.Sprintf("%s/%s%s", keyPrefix, id, utils.GetExtensionFromMimeType(pf.Original.ContentType))

		obj, err := r.uploadWithRetry(ctx, key, pf.Original)
		if err != nil {
			r.removeThumbnail(ctx, keyPrefix, id, thumbnailURL)

			return nil, err
		}
		item.RemoteURL = obj.URL

	case model.StorageLocal:
		key := fmt.Sprintf("%s/%s", parentID, id)

		err := r.blobs.Put(ctx, key, pf.Original.Data, model.BlobMetadata{
			FileName:     pf.Original.Name,
			FileSize:     pf.Original.Size,
			FileType:     pf.Original.ContentType,
			UploadedAt:   item.UploadedAt,
			ThumbnailURL: thumbnailURL,
		})
		if err != nil {
			r.removeThumbnail(ctx, keyPrefix, id, thumbnailURL)

			return nil, err
		}
		item.LocalKey = key
	}

	metrics.IngestedTotal.WithLabelValues(string(pf.Type), string(tier)).Inc()

	return &item, nil
}

// storeThumbnail uploads the preview asset when one exists. The upload
// goes through the same retry policy as any remote write, but exhaustion
// only costs the thumbnail, never the item.
func (r *StorageRouter) storeThumbnail(ctx context.Context, pf entity.ProcessedFile,
	keyPrefix, id string,
) string {
	if pf.Thumbnail == nil {
		return ""
	}

	key := thumbnailKey(keyPrefix, id)

	obj, err := r.uploadWithRetry(ctx, key, *pf.Thumbnail)
	if err != nil {
		logger.Warn("thumbnail upload failed, proceeding without one",
			"file", pf.Original.Name, "err", err)
		metrics.ThumbnailFailures.Inc()

		return ""
	}

	return obj.URL
}

func (r *StorageRouter) removeThumbnail(ctx context.Context, keyPrefix, id, thumbnailURL string) {
	if thumbnailURL == "" {
		return
	}

	if err := r.objectRemover.Remove(ctx, thumbnailKey(keyPrefix, id)); err != nil {
		logger.Error("failed to remove orphaned thumbnail", "id", id, "err", err)
	}
}

func (r *StorageRouter) uploadWithRetry(ctx context.Context, key string, f entity.File) (entity.RemoteObject, error) {
	var obj entity.RemoteObject

	attempts, err := r.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		obj, err = r.objects.UploadObject(ctx, key, f.Data, f.ContentType)

		return err
	})
	if attempts > 1 {
		metrics.UploadRetries.Add(float64(attempts - 1))
	}
	if err != nil {
		return entity.RemoteObject{}, &mediaerr.RemoteUploadError{
			FileName: f.Name,
			FileSize: f.Size,
			FileType: f.ContentType,
			Attempts: attempts,
			Err:      err,
		}
	}

	return obj, nil
}

func thumbnailKey(keyPrefix, id string) string {
	return fmt.Sprintf("%s/thumbs/%s.jpg", keyPrefix, id)
}

package objectstore

import (
	"context"

	"propmedia/internal/domain/entity"
)

// Uploader writes one object to remote storage. Durable once acknowledged;
// the returned URL is publicly resolvable.
type Uploader interface {
	UploadObject(ctx context.Context, key string, data []byte, contentType string) (entity.RemoteObject, error)
}

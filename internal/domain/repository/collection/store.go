package collection

import (
	"context"

	"propmedia/internal/domain/model"
)

// Store is the parent-record persistence collaborator. Load of an unknown
// parent returns an empty collection; both operations fail with generic
// I/O errors that the pipeline surfaces but does not retry.
type Store interface {
	Load(ctx context.Context, parentID string) (*model.MediaCollection, error)
	Save(ctx context.Context, col *model.MediaCollection) error
}

package abstraction

import (
	"context"

	"propmedia/internal/domain/dto"
	"propmedia/internal/domain/model"
)

// CollectionManager exposes the explicit user actions on a record's media.
type CollectionManager interface {
	List(ctx context.Context, parentID string) (*model.MediaCollection, error)
	RemoveItem(ctx context.Context, parentID, mediaID string) (dto.RemoveResult, error)
	SetCover(ctx context.Context, parentID, mediaID string) error
	Reorder(ctx context.Context, parentID string, order []string) error
}

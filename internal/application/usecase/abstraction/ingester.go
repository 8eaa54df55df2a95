package abstraction

import (
	"context"

	"propmedia/internal/domain/dto"
	"propmedia/internal/domain/entity"
)

// Ingester is the single batch entry point UI code calls.
type Ingester interface {
	Ingest(ctx context.Context, files []entity.File, parentID, userID string,
		promoteFirstImage bool) (dto.IngestResult, error)
}

package processing

import (
	"context"

	"propmedia/internal/domain/entity"
	"propmedia/internal/domain/model"
)

// Validator enforces type/size/duration policy before any expensive work.
// Pure check: nothing is persisted. It returns the detected media type so
// routing does not re-sniff content.
type Validator interface {
	Validate(ctx context.Context, f *entity.File) (model.MediaType, error)
}

// Compressor normalizes a file to bounded dimensions/bitrates. Best-effort:
// on any failure it returns the original file unchanged, never an error.
type Compressor interface {
	Compress(ctx context.Context, f *entity.File, kind model.MediaType) *entity.File
}

// Thumbnailer derives a small preview asset. May fail independently of the
// main upload; callers degrade to no thumbnail.
type Thumbnailer interface {
	Generate(ctx context.Context, f *entity.File, kind model.MediaType) (*entity.File, error)
}

// DurationProber reads the play length from a video's metadata.
type DurationProber interface {
	Probe(ctx context.Context, f *entity.File) (seconds float64, err error)
}

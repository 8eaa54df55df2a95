package processing

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"propmedia/internal/domain/entity"
	"propmedia/internal/domain/mediaerr"
	"propmedia/internal/domain/model"
	repo "propmedia/internal/domain/repository/processing"
	"propmedia/pkg/logger"
)

// Validator rejects files before any expensive pipeline work. The MIME
// type is sniffed from content, never taken from the client's declaration.
type Validator struct {
	cfg    ValidatorConfig
	prober repo.DurationProber
}

func NewValidator(cfg ValidatorConfig, prober repo.DurationProber) *Validator {
	return &Validator{
		cfg:    cfg.withDefaults(),
		prober: prober,
	}
}

func (v *Validator) Validate(ctx context.Context, f *entity.File) (model.MediaType, error) {
	if int64(len(f.Data)) > v.cfg.MaxFileBytes {
		return "", mediaerr.NewValidation(mediaerr.TooLarge, f.Name,
			fmt.Sprintf("file is %d bytes, limit is %d", len(f.Data), v.cfg.MaxFileBytes))
	}

	detected := mimetype.Detect(f.Data).String()
	var kind model.MediaType
	switch {
	case strings.HasPrefix(detected, "image/"):
		kind = model.MediaTypeImage
	case strings.HasPrefix(detected, "video/"):
		kind = model.MediaTypeVideo
	default:
		return "", mediaerr.NewValidation(mediaerr.UnsupportedType, f.Name,
			fmt.Sprintf("unsupported type %s", detected))
	}

	// Trust the sniffed type over whatever the client declared.
	f.ContentType = detected

	if kind == model.MediaTypeVideo {
		seconds, err := v.prober.Probe(ctx, f)
		if err != nil {
			// A file whose metadata cannot be read is not rejected here; a
			// decoder problem on our side must not block the upload.
			logger.Warn("duration probe failed, accepting video unchecked",
				"file", f.Name, "err", err)

			return kind, nil
		}

		if seconds > float64(v.cfg.MaxVideoSeconds) {
			return "", mediaerr.NewValidation(mediaerr.DurationExceeded, f.Name,
				fmt.Sprintf("video is %.1fs, limit is %ds", seconds, v.cfg.MaxVideoSeconds))
		}
	}

	return kind, nil
}

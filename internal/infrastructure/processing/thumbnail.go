package processing

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"time"

	"github.com/disintegration/imaging"

	"propmedia/internal/domain/entity"
	"propmedia/internal/domain/model"
	"propmedia/pkg/utils"
)

// Thumbnailer derives small preview assets. Thumbnails are always encoded
// as JPEG regardless of source format; a failure here never fails the
// owning upload.
type Thumbnailer struct {
	cfg ThumbnailConfig
}

func NewThumbnailer(cfg ThumbnailConfig) *Thumbnailer {
	return &Thumbnailer{cfg: cfg.withDefaults()}
}

func (t *Thumbnailer) Generate(ctx context.Context, f *entity.File, kind model.MediaType) (*entity.File, error) {
	var (
		img      image.Image
		bound    int
		maxBytes int64
		err      error
	)

	switch kind {
	case model.MediaTypeImage:
		img, err = imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
		bound, maxBytes = t.cfg.ImageBound, t.cfg.ImageMaxBytes
	case model.MediaTypeVideo:
		img, err = t.extractFirstFrame(ctx, f)
		bound, maxBytes = t.cfg.VideoBound, t.cfg.VideoMaxBytes
	default:
		return nil, fmt.Errorf("unsupported media type %q", kind)
	}
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, bound, bound, imaging.Lanczos)

	data, err := encodeJPEGUnder(thumb, maxBytes, 80)
	if err != nil {
		return nil, err
	}

	return &entity.File{
		Name:        replaceExt(f.Name, "_thumb.jpg"),
		ContentType: "image/jpeg",
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

// extractFirstFrame grabs a single frame via ffmpeg. It tries one second
// in first to skip black lead-ins, then falls back to the very first frame
// for clips shorter than that.
func (t *Thumbnailer) extractFirstFrame(ctx context.Context, f *entity.File) (image.Image, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}

	tmp, err := writeTempFile(f.Data, utils.GetExtensionFromMimeType(f.ContentType))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(t.cfg.Timeout)*time.Millisecond)
	defer cancel()

	frame, err := runFrameExtract(ctx, tmp, true)
	if err != nil {
		frame, err = runFrameExtract(ctx, tmp, false)
	}
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("decode extracted frame: %w", err)
	}

	return img, nil
}

func runFrameExtract(ctx context.Context, path string, seek bool) ([]byte, error) {
	args := []string{"-i", path}
	if seek {
		args = []string{"-ss", "00:00:01", "-i", path}
	}
	args = append(args,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w - %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no frame")
	}

	return stdout.Bytes(), nil
}

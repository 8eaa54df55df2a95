package processing

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"propmedia/internal/domain/entity"
	"propmedia/internal/domain/model"
	"propmedia/internal/metrics"
	"propmedia/pkg/logger"
	"propmedia/pkg/utils"
)

// Compressor normalizes media before persistence. Compression is an
// optimization, not a precondition: every failure path hands back the
// original file untouched.
type Compressor struct {
	cfg CompressorConfig
}

func NewCompressor(cfg CompressorConfig) *Compressor {
	return &Compressor{cfg: cfg.withDefaults()}
}

func (c *Compressor) Compress(ctx context.Context, f *entity.File, kind model.MediaType) *entity.File {
	var (
		out *entity.File
		err error
	)

	switch kind {
	case model.MediaTypeImage:
		out, err = c.compressImage(f)
	case model.MediaTypeVideo:
		out, err = c.compressVideo(ctx, f)
	default:
		return f
	}

	if err != nil {
		logger.Warn("compression failed, keeping original", "file", f.Name, "err", err)
		metrics.CompressionFallbacks.Inc()

		return f
	}

	if out.Size >= f.Size {
		return f
	}

	saved := f.Size - out.Size
	metrics.CompressionSavedBytes.Add(float64(saved))
	logger.Debug("compressed", "file", f.Name, "before", f.Size, "after", out.Size)

	return out
}

func (c *Compressor) compressImage(f *entity.File) (*entity.File, error) {
	img, err := imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	bound := c.cfg.MaxImageDimension
	if img.Bounds().Dx() > bound || img.Bounds().Dy() > bound {
		img = imaging.Fit(img, bound, bound, imaging.Lanczos)
	}

	data, err := encodeJPEGUnder(img, c.cfg.MaxImageBytes, 85)
	if err != nil {
		return nil, err
	}

	return &entity.File{
		Name:        replaceExt(f.Name, ".jpg"),
		ContentType: "image/jpeg",
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func (c *Compressor) compressVideo(ctx context.Context, f *entity.File) (*entity.File, error) {
	if f.Size <= c.cfg.VideoMinBytes {
		return f, nil
	}

	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}

	in, err := writeTempFile(f.Data, utils.GetExtensionFromMimeType(f.ContentType))
	if err != nil {
		return nil, err
	}
	defer os.Remove(in)

	out := in + ".out.mp4"
	defer os.Remove(out)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.Timeout)*time.Millisecond)
	defer cancel()

	// Constant-quality H.264 tuned for web delivery, resolution capped,
	// audio re-encoded at a fixed bitrate.
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", in,
		"-vf", fmt.Sprintf("scale=-2:'min(%d,ih)'", c.cfg.VideoMaxHeight),
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", fmt.Sprint(c.cfg.VideoCRF),
		"-c:a", "aac",
		"-b:a", c.cfg.AudioBitrate,
		"-movflags", "+faststart",
		out,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w - %s", err, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output")
	}

	return &entity.File{
		Name:        replaceExt(f.Name, ".mp4"),
		ContentType: "video/mp4",
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

// encodeJPEGUnder re-encodes img, stepping quality down until the result
// fits maxBytes or quality bottoms out. The closest result wins; the hard
// cap is best-effort at the lowest step.
func encodeJPEGUnder(img image.Image, maxBytes int64, quality int) ([]byte, error) {
	var buf bytes.Buffer
	for {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}

		if int64(buf.Len()) <= maxBytes || quality <= 30 {
			return append([]byte(nil), buf.Bytes()...), nil
		}

		quality -= 10
	}
}

func replaceExt(name, ext string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}

	return name + ext
}

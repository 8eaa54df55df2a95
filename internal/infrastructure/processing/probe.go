package processing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"propmedia/internal/domain/entity"
	"propmedia/pkg/utils"
)

// FFProbe reads video duration by decoding container metadata with the
// ffprobe binary. The payload is written to a temp file first; ffprobe
// cannot seek a pipe for every container format.
type FFProbe struct{}

func NewFFProbe() *FFProbe {
	return &FFProbe{}
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (p *FFProbe) Probe(ctx context.Context, f *entity.File) (float64, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0, fmt.Errorf("ffprobe not found: %w", err)
	}

	tmp, err := writeTempFile(f.Data, utils.GetExtensionFromMimeType(f.ContentType))
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp)

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		tmp,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe error: %w - %s", err, stderr.String())
	}

	var out ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output: %w", err)
	}
	if out.Format.Duration == "" {
		return 0, fmt.Errorf("no duration in metadata")
	}

	seconds, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", out.Format.Duration, err)
	}

	return seconds, nil
}

func writeTempFile(data []byte, ext string) (string, error) {
	tmp, err := os.CreateTemp("", "propmedia-*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return "", err
	}

	return tmp.Name(), nil
}

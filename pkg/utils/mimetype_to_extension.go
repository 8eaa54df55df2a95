package utils

import "strings"

// mimeTypeToExtension maps the media MIME types this pipeline accepts to
// their typical file extensions. Anything else falls back to ".bin".
var mimeTypeToExtension = map[string]string{
	"image/bmp":        ".bmp",
	"image/gif":        ".gif",
	"image/jpeg":       ".jpg",
	"image/png":        ".png",
	"image/svg+xml":    ".svg",
	"image/tiff":       ".tif",
	"image/webp":       ".webp",
	"image/heic":       ".heic",
	"image/avif":       ".avif",
	"video/avi":        ".avi",
	"video/mpeg":       ".mpeg",
	"video/mp4":        ".mp4",
	"video/ogg":        ".ogv",
	"video/webm":       ".webm",
	"video/quicktime":  ".mov",
	"video/x-flv":      ".flv",
	"video/x-msvideo":  ".avi",
	"video/x-ms-wmv":   ".wmv",
	"video/x-matroska": ".mkv",
}

// GetExtensionFromMimeType returns a common file extension for a given MIME type.
func GetExtensionFromMimeType(mimeType string) string {
	// Strip parameters if present (e.g., "image/svg+xml; charset=utf-8")
	cleanedMimeType := strings.TrimSpace(strings.Split(mimeType, ";")[0])
	if ext, ok := mimeTypeToExtension[cleanedMimeType]; ok {
		return ext
	}

	return ".bin"
}

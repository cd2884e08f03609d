package validate

import (
	"bytes"
	"path/filepath"
	"strings"

	"webp2gif/internal/utils/errs"
)

var (
	webpRIFFMagic = []byte("RIFF")
	webpFormMagic = []byte("WEBP")
	gifMagic      = []byte("GIF8")
)

// ValidateWebPPath reports whether the path carries the .webp extension.
// The batch front end uses it to filter inputs before any file is opened.
func ValidateWebPPath(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".webp" {
		return errs.ErrUnreadableFormat
	}

	return nil
}

// SniffWebP reports whether data starts with a RIFF/WEBP container header.
// data needs at least the 12 header bytes; shorter input fails the sniff.
func SniffWebP(data []byte) bool {
	if len(data) < 12 {
		return false
	}

	return bytes.Equal(data[0:4], webpRIFFMagic) && bytes.Equal(data[8:12], webpFormMagic)
}

// SniffGIF reports whether data starts with a GIF signature (GIF87a or
// GIF89a share the GIF8 prefix).
func SniffGIF(data []byte) bool {
	return bytes.HasPrefix(data, gifMagic)
}

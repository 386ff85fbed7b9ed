package config

import (
	"path/filepath"
	"strings"
)

// supportedImageExtensions lists the lowercase file extensions the scanner
// accepts as OCR input.
var supportedImageExtensions = map[string]struct{}{ //nolint:gochecknoglobals // Static extension set
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".bmp":  {},
	".tiff": {},
	".tif":  {},
	".webp": {},
	".gif":  {},
}

// IsSupportedImage reports whether path has a supported image extension.
// Matching is case-insensitive.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := supportedImageExtensions[ext]
	return ok
}

// ImageExtensions returns the supported extensions (with leading dot) in
// unspecified order.
func ImageExtensions() []string {
	exts := make([]string, 0, len(supportedImageExtensions))
	for ext := range supportedImageExtensions {
		exts = append(exts, ext)
	}
	return exts
}

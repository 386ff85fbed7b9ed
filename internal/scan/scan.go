// Package scan finds OCR input files. It filters a directory listing by the
// supported image extensions and can optionally probe files to confirm they
// decode as images before a batch run touches them.
package scan

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	// Registered so Probe can sniff the non-stdlib formats the scanner
	// accepts.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/StephenKaylonChan/ocrkit/internal/config"
	"github.com/StephenKaylonChan/ocrkit/internal/engine"
)

// FindImages lists the supported image files directly under dir, sorted by
// name for deterministic batch order. A missing or non-directory path
// yields *engine.NotFoundError.
func FindImages(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &engine.NotFoundError{Path: dir}
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, &engine.NotFoundError{Path: dir}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if config.IsSupportedImage(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Probe confirms that path exists and decodes as an image, returning its
// format name ("png", "tiff", ...). Missing files yield
// *engine.NotFoundError.
func Probe(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &engine.NotFoundError{Path: path}
		}
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return format, nil
}

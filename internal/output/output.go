// Package output is the persistence boundary: it writes JSON and text
// artifacts to disk. Failures surface as *engine.OutputError and are never
// retried here.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/StephenKaylonChan/ocrkit/internal/engine"
)

// EnsureDir creates dir (and parents) if missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return &engine.OutputError{Path: dir, Err: err}
	}
	return nil
}

// WriteJSON marshals v with indentation and writes it atomically to path.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &engine.OutputError{Path: path, Err: fmt.Errorf("marshaling: %w", err)}
	}
	return writeAtomic(path, append(data, '\n'))
}

// WriteText writes text content atomically to path.
func WriteText(path, content string) error {
	return writeAtomic(path, []byte(content))
}

// writeAtomic writes to a temporary file in the target directory, then
// renames it into place so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return &engine.OutputError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &engine.OutputError{Path: path, Err: err}
	}
	return nil
}

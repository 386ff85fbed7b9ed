package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StephenKaylonChan/ocrkit/internal/engine"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Existing directory is fine.
	require.NoError(t, EnsureDir(dir))
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.json")
	payload := map[string]any{"total": 3, "run_id": "01JTEST"}

	require.NoError(t, WriteJSON(path, payload))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Equal(t, byte('\n'), data[len(data)-1])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "01JTEST", decoded["run_id"])

	// No temporary file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteJSONUnmarshalableValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	err := WriteJSON(path, map[string]any{"bad": make(chan int)})

	var outputErr *engine.OutputError
	require.ErrorAs(t, err, &outputErr)
	assert.Equal(t, path, outputErr.Path)
}

func TestWriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.txt")
	require.NoError(t, WriteText(path, "line one\nline two\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(data))

	// Overwrite replaces the previous content.
	require.NoError(t, WriteText(path, "replaced\n"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "replaced\n", string(data))
}

func TestWriteTextIntoFileAsDir(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	// Parent "directory" is a regular file, so the write must fail with an
	// output error.
	err := WriteText(filepath.Join(blocker, "page.txt"), "content")
	var outputErr *engine.OutputError
	require.ErrorAs(t, err, &outputErr)
}

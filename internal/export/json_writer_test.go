package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ankistats/pkg/models"
)

var updated = time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC)

func readDocument(t *testing.T, path string) models.ExportDocument {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc models.ExportDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "data", "anki_data.json")
	counts := models.DailyCounts{
		{Date: "2024-01-01", Count: 2},
		{Date: "2024-01-02", Count: 1},
	}

	res, err := WriteJSON(path, counts, updated)
	require.NoError(t, err)
	assert.Equal(t, path, res.Path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), res.Size)

	doc := readDocument(t, path)
	assert.Equal(t, counts.Map(), doc.Data)
	assert.Equal(t, 2, doc.TotalDays)
	assert.Equal(t, 3, doc.TotalReviews)
	assert.Equal(t, "2024-01-03T09:30:00Z", doc.Updated)
}

func TestWriteJSON_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anki_data.json")

	_, err := WriteJSON(path, models.DailyCounts{}, updated)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"updated":"2024-01-03T09:30:00Z","total_days":0,"total_reviews":0,"data":{}}`, string(raw))
}

func TestWriteJSON_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anki_data.json")
	counts := models.DailyCounts{{Date: "2024-01-01", Count: 5}}

	_, err := WriteJSON(path, counts, updated)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	want := strings.Join([]string{
		`{`,
		`  "updated": "2024-01-03T09:30:00Z",`,
		`  "total_days": 1,`,
		`  "total_reviews": 5,`,
		`  "data": {`,
		`    "2024-01-01": 5`,
		`  }`,
		`}`,
		``,
	}, "\n")
	assert.Equal(t, want, string(raw))
}

func TestWriteJSON_ReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anki_data.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("old history ", 1000)), 0o644))

	_, err := WriteJSON(path, models.DailyCounts{{Date: "2024-02-01", Count: 7}}, updated)
	require.NoError(t, err)

	doc := readDocument(t, path)
	assert.Equal(t, map[string]int{"2024-02-01": 7}, doc.Data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteJSON_Idempotent(t *testing.T) {
	dir := t.TempDir()
	counts := models.DailyCounts{
		{Date: "2023-12-31", Count: 40},
		{Date: "2024-01-01", Count: 12},
	}

	_, err := WriteJSON(filepath.Join(dir, "a.json"), counts, updated)
	require.NoError(t, err)
	_, err = WriteJSON(filepath.Join(dir, "b.json"), counts, updated.Add(time.Hour))
	require.NoError(t, err)

	a := readDocument(t, filepath.Join(dir, "a.json"))
	b := readDocument(t, filepath.Join(dir, "b.json"))
	assert.NotEqual(t, a.Updated, b.Updated)
	a.Updated, b.Updated = "", ""
	assert.Equal(t, a, b)
}

func TestWriteJSON_Failures(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "parent is a file", path: filepath.Join(blocker, "anki_data.json")},
		{name: "destination is a directory", path: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WriteJSON(tt.path, models.DailyCounts{{Date: "2024-01-01", Count: 1}}, updated)
			assert.ErrorIs(t, err, ErrWriteFailed)
		})
	}
}

func TestEncodeDocument_NonASCIILiteral(t *testing.T) {
	doc := models.ExportDocument{Updated: "mañana <now>", Data: nil}

	raw, err := EncodeDocument(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"mañana <now>"`)
	assert.Contains(t, string(raw), `"data": {}`)
}

func TestWriteJSON_FileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	dir := t.TempDir()
	counts := models.DailyCounts{{Date: "2024-01-01", Count: 1}}

	fresh := filepath.Join(dir, "fresh.json")
	_, err := WriteJSON(fresh, counts, updated)
	require.NoError(t, err)
	info, err := os.Stat(fresh)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	private := filepath.Join(dir, "private.json")
	require.NoError(t, os.WriteFile(private, []byte("{}"), 0o600))
	require.NoError(t, os.Chmod(private, 0o600))
	_, err = WriteJSON(private, counts, updated)
	require.NoError(t, err)
	info, err = os.Stat(private)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, counts.Map(), readDocument(t, private).Data)
}

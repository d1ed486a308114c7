package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"github.com/example/ankistats/pkg/models"
)

// ErrWriteFailed is returned when an export file cannot be created or written
var ErrWriteFailed = errors.New("export write failed")

// Result describes a written export file
type Result struct {
	Path string
	Size int64
}

// WriteJSON writes the export document for counts to path, replacing any
// existing file. Parent directories are created as needed.
func WriteJSON(path string, counts models.DailyCounts, updated time.Time) (*Result, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty destination path", ErrWriteFailed)
	}

	data, err := EncodeDocument(models.NewExportDocument(counts, updated))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat %s: %v", ErrWriteFailed, path, err)
	}
	return &Result{Path: path, Size: info.Size()}, nil
}

// EncodeDocument renders doc as indented JSON with non-ASCII text left unescaped
func EncodeDocument(doc models.ExportDocument) ([]byte, error) {
	if doc.Data == nil {
		doc.Data = map[string]int{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode export document: %v", err)
	}
	return buf.Bytes(), nil
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory, so a failed write leaves the previous export untouched.
// An existing file keeps its mode; a new one gets 0644.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", dir, err)
	}

	_, statErr := os.Stat(path)
	created := errors.Is(statErr, os.ErrNotExist)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to replace %s: %v", path, err)
	}

	if created {
		if err := os.Chmod(path, 0o644); err != nil {
			return fmt.Errorf("failed to set permissions on %s: %v", path, err)
		}
	}
	return nil
}

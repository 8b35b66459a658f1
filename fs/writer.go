// Package fs provides file-based persistence of parsed ballot records as
// JSON audit artifacts.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/otalvaro/escrutinio"
)

// RecordPath derives a relative file path for a stored record from its
// geographic codes, e.g. dept 16, muni 001, mesa 066, page "01 de 09" →
// 16/001/mesa-066-01.json. Records without geo codes fall back to their
// source hash so nothing is ever dropped.
func RecordPath(rec *escrutinio.StoredRecord) string {
	geo := rec.Record.Geo
	if geo.Department == "" || geo.Municipality == "" || geo.Table == "" {
		return filepath.Join("unlocated", rec.SourceHash+".json")
	}
	name := "mesa-" + geo.Table
	if page := pageNumber(rec.Record.Page); page != "" {
		name += "-" + page
	}
	return filepath.Join(geo.Department, geo.Municipality, name+".json")
}

// pageNumber extracts the leading page number from a "NN de MM" marker.
func pageNumber(marker string) string {
	n, _, ok := strings.Cut(marker, " ")
	if !ok {
		return ""
	}
	return n
}

// FormatRecord renders a stored record as indented JSON.
func FormatRecord(rec *escrutinio.StoredRecord) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}

// Ensure Writer implements escrutinio.RecordWriter at compile time.
var _ escrutinio.RecordWriter = (*Writer)(nil)

// Writer writes stored records as JSON files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteRecord writes a stored record to disk as a JSON file.
func (w *Writer) WriteRecord(ctx context.Context, rec *escrutinio.StoredRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, RecordPath(rec))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatRecord(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, content, 0644)
}

// Package fs writes audit results to files on disk.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/diraudit"
)

// Exporter writes result files with atomic replace semantics.
// Rows are written to path.tmp, then renamed over path on success.
type Exporter struct {
	writers map[string]diraudit.ResultWriter
}

// NewExporter creates an Exporter that picks a writer by file extension,
// e.g. ".csv" or ".xlsx".
func NewExporter(writers map[string]diraudit.ResultWriter) *Exporter {
	m := make(map[string]diraudit.ResultWriter, len(writers))
	for ext, w := range writers {
		m[strings.ToLower(ext)] = w
	}
	return &Exporter{writers: m}
}

// Formats returns the supported extensions, sorted.
func (e *Exporter) Formats() []string {
	exts := make([]string, 0, len(e.writers))
	for ext := range e.writers {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Export writes rows to path in the format implied by its extension.
// An existing file at path is left untouched if writing fails.
func (e *Exporter) Export(ctx context.Context, path string, rows []diraudit.ResultRow) error {
	ext := strings.ToLower(filepath.Ext(path))
	w, ok := e.writers[ext]
	if !ok {
		return diraudit.Errorf(diraudit.EINVALID, "unsupported output format %q: use one of %s", ext, strings.Join(e.Formats(), ", "))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := w.WriteResults(f, rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

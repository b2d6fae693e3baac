package mock

import (
	"context"
	"io"

	"github.com/fwojciec/diraudit"
)

// Compile-time interface verification.
var (
	_ diraudit.RosterLoader = (*RosterLoader)(nil)
	_ diraudit.ResultWriter = (*ResultWriter)(nil)
)

// RosterLoader is a mock implementation of diraudit.RosterLoader.
type RosterLoader struct {
	LoadRosterFn func(ctx context.Context, path string) ([]*diraudit.RosterEntry, error)
}

func (l *RosterLoader) LoadRoster(ctx context.Context, path string) ([]*diraudit.RosterEntry, error) {
	return l.LoadRosterFn(ctx, path)
}

// ResultWriter is a mock implementation of diraudit.ResultWriter.
type ResultWriter struct {
	WriteResultsFn func(w io.Writer, rows []diraudit.ResultRow) error
}

func (rw *ResultWriter) WriteResults(w io.Writer, rows []diraudit.ResultRow) error {
	return rw.WriteResultsFn(w, rows)
}

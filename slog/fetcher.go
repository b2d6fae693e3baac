// Package slog provides logging decorators for the audit collaborators.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/diraudit"
)

// Compile-time interface verification.
var (
	_ diraudit.Fetcher        = (*LoggingFetcher)(nil)
	_ diraudit.FetcherFactory = (*LoggingFetcherFactory)(nil)
)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   diraudit.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next diraudit.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingFetcherFactory wraps a FetcherFactory so that session opens and
// every opened fetcher are logged.
type LoggingFetcherFactory struct {
	next   diraudit.FetcherFactory
	logger *slog.Logger
}

// NewLoggingFetcherFactory creates a new LoggingFetcherFactory.
func NewLoggingFetcherFactory(next diraudit.FetcherFactory, logger *slog.Logger) *LoggingFetcherFactory {
	return &LoggingFetcherFactory{next: next, logger: logger}
}

// OpenFetcher opens a fetcher from the wrapped factory and wraps it in a
// LoggingFetcher.
func (f *LoggingFetcherFactory) OpenFetcher(ctx context.Context) (fetcher diraudit.Fetcher, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("open fetcher",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	inner, err := f.next.OpenFetcher(ctx)
	if err != nil {
		return nil, err
	}
	return NewLoggingFetcher(inner, f.logger), nil
}

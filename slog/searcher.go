package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/diraudit"
)

var _ diraudit.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   diraudit.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next diraudit.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search logs the query, result count and duration.
func (s *LoggingSearcher) Search(ctx context.Context, q diraudit.SearchQuery) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"doctor", q.Name,
			"directory", q.Domain,
			"results", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, q)
}

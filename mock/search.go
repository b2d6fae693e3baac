package mock

import (
	"context"

	"github.com/fwojciec/diraudit"
)

var _ diraudit.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of diraudit.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, q diraudit.SearchQuery) ([]string, error)
}

func (s *Searcher) Search(ctx context.Context, q diraudit.SearchQuery) ([]string, error) {
	return s.SearchFn(ctx, q)
}

package diraudit

import "context"

// SearchQuery identifies a doctor to look up on one directory.
type SearchQuery struct {
	Name     string
	Location string
	Domain   string
}

// Searcher finds candidate profile URLs for a doctor on a directory.
type Searcher interface {
	// Search returns candidate profile URLs in ranking order, bounded by the
	// implementation's maximum result count and restricted to hosts that
	// contain the queried domain.
	Search(ctx context.Context, q SearchQuery) ([]string, error)
}

package diraudit

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL, waits for JavaScript to render,
	// and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases the fetcher's resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// FetcherFactory opens fetchers. Each audit unit opens its own fetcher
// and closes it when the unit finishes.
type FetcherFactory interface {
	OpenFetcher(ctx context.Context) (Fetcher, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

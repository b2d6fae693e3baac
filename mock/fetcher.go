package mock

import (
	"context"

	"github.com/fwojciec/diraudit"
)

// Compile-time interface verification.
var (
	_ diraudit.Fetcher        = (*Fetcher)(nil)
	_ diraudit.FetcherFactory = (*FetcherFactory)(nil)
	_ diraudit.DomainLimiter  = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of diraudit.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// FetcherFactory is a mock implementation of diraudit.FetcherFactory.
type FetcherFactory struct {
	OpenFetcherFn func(ctx context.Context) (diraudit.Fetcher, error)
}

func (f *FetcherFactory) OpenFetcher(ctx context.Context) (diraudit.Fetcher, error) {
	return f.OpenFetcherFn(ctx)
}

// DomainLimiter is a mock implementation of diraudit.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

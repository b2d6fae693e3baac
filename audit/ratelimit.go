package audit

import (
	"context"
	"sync"

	"github.com/fwojciec/diraudit"
	"golang.org/x/time/rate"
)

var _ diraudit.DomainLimiter = (*DirectoryLimiter)(nil)

// DirectoryLimiter spaces page fetches per directory. Hosts and URLs are
// reduced to their registrable domain with diraudit.DirectoryID, so
// "www.vitals.com" and "https://vitals.com/doctors" draw from one bucket.
type DirectoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	every   rate.Limit
}

// NewDirectoryLimiter returns a limiter allowing perSecond fetches per
// directory with no bursting.
func NewDirectoryLimiter(perSecond float64) *DirectoryLimiter {
	return &DirectoryLimiter{
		buckets: make(map[string]*rate.Limiter),
		every:   rate.Limit(perSecond),
	}
}

// Wait blocks until dir may be fetched again or ctx is done.
func (l *DirectoryLimiter) Wait(ctx context.Context, dir string) error {
	return l.bucket(dir).Wait(ctx)
}

// Directories returns how many distinct directories have been throttled.
func (l *DirectoryLimiter) Directories() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *DirectoryLimiter) bucket(dir string) *rate.Limiter {
	key := diraudit.DirectoryID(dir)
	if key == "" {
		key = dir
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.every, 1)
		l.buckets[key] = b
	}
	return b
}

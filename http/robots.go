package http

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/diraudit"
	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
)

// DefaultRobotsTTL is how long a host's robots.txt stays cached.
const DefaultRobotsTTL = time.Hour

// Compile-time interface verification.
var (
	_ diraudit.Fetcher        = (*RobotsFetcher)(nil)
	_ diraudit.FetcherFactory = (*RobotsFactory)(nil)
)

// Robots answers robots.txt queries for a user agent, caching each host's
// rules. An unreachable robots.txt allows everything. Robots is safe for
// concurrent use.
type Robots struct {
	client    *http.Client
	userAgent string
	cache     *gocache.Cache
}

// NewRobots creates a Robots checker identifying itself as userAgent.
func NewRobots(userAgent string, timeout time.Duration) *Robots {
	return &Robots{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		cache:     gocache.New(DefaultRobotsTTL, 2*DefaultRobotsTTL),
	}
}

// Allowed reports whether rawURL may be fetched.
func (r *Robots) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false, diraudit.Errorf(diraudit.EINVALID, "invalid URL %q", rawURL)
	}

	data, err := r.rules(ctx, u)
	if err != nil {
		return false, err
	}
	return data.TestAgent(u.RequestURI(), r.userAgent), nil
}

func (r *Robots) rules(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	key := u.Scheme + "://" + u.Host
	if v, ok := r.cache.Get(key); ok {
		return v.(*robotstxt.RobotsData), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key+"/robots.txt", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	var data *robotstxt.RobotsData
	resp, err := r.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		data, _ = robotstxt.FromStatusAndBytes(http.StatusNotFound, nil)
	} else {
		defer resp.Body.Close()
		if data, err = robotstxt.FromResponse(resp); err != nil {
			data, _ = robotstxt.FromStatusAndBytes(http.StatusNotFound, nil)
		}
	}

	r.cache.SetDefault(key, data)
	return data, nil
}

// RobotsFetcher refuses URLs disallowed by robots.txt with EFORBIDDEN and
// delegates the rest.
type RobotsFetcher struct {
	next   diraudit.Fetcher
	robots *Robots
}

// NewRobotsFetcher wraps next with robots.txt checks.
func NewRobotsFetcher(next diraudit.Fetcher, robots *Robots) *RobotsFetcher {
	return &RobotsFetcher{next: next, robots: robots}
}

// Fetch implements diraudit.Fetcher.
func (f *RobotsFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	allowed, err := f.robots.Allowed(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", diraudit.Errorf(diraudit.EFORBIDDEN, "disallowed by robots.txt: %s", rawURL)
	}
	return f.next.Fetch(ctx, rawURL)
}

// Close closes the wrapped fetcher.
func (f *RobotsFetcher) Close() error {
	return f.next.Close()
}

// RobotsFactory opens fetchers from next wrapped in a RobotsFetcher. All
// opened fetchers share one robots.txt cache.
type RobotsFactory struct {
	next   diraudit.FetcherFactory
	robots *Robots
}

// NewRobotsFactory wraps next so every fetcher it opens honors robots.
func NewRobotsFactory(next diraudit.FetcherFactory, robots *Robots) *RobotsFactory {
	return &RobotsFactory{next: next, robots: robots}
}

// OpenFetcher implements diraudit.FetcherFactory.
func (f *RobotsFactory) OpenFetcher(ctx context.Context) (diraudit.Fetcher, error) {
	inner, err := f.next.OpenFetcher(ctx)
	if err != nil {
		return nil, err
	}
	return NewRobotsFetcher(inner, f.robots), nil
}

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/diraudit"
	"golang.org/x/time/rate"
)

// DefaultSearchURL is the Google Custom Search JSON API endpoint.
const DefaultSearchURL = "https://www.googleapis.com/customsearch/v1"

// maxSearchResults is the largest page size the API accepts.
const maxSearchResults = 10

var _ diraudit.Searcher = (*Searcher)(nil)

// Searcher finds directory profile URLs through the Google Custom Search
// JSON API. Queries are paced to one per interval across all goroutines.
type Searcher struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	engineID   string
	maxResults int
	limiter    *rate.Limiter
	delays     []time.Duration
	retryLog   LogFunc
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) SearcherOption {
	return func(s *Searcher) {
		s.baseURL = u
	}
}

// WithMaxResults bounds the number of URLs returned per query.
func WithMaxResults(n int) SearcherOption {
	return func(s *Searcher) {
		s.maxResults = n
	}
}

// WithSearchInterval sets the minimum interval between queries.
// Zero disables pacing.
func WithSearchInterval(d time.Duration) SearcherOption {
	return func(s *Searcher) {
		if d <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithRetryDelays sets the backoff used for transient API failures.
func WithRetryDelays(delays []time.Duration) SearcherOption {
	return func(s *Searcher) {
		s.delays = delays
	}
}

// WithRetryLog sets a function called before each retry.
func WithRetryLog(fn LogFunc) SearcherOption {
	return func(s *Searcher) {
		s.retryLog = fn
	}
}

// WithHTTPClient sets the client used for API requests.
func WithHTTPClient(c *http.Client) SearcherOption {
	return func(s *Searcher) {
		s.client = c
	}
}

// NewSearcher creates a Searcher for the given API key and search engine ID.
func NewSearcher(apiKey, engineID string, opts ...SearcherOption) *Searcher {
	s := &Searcher{
		client:     &http.Client{Timeout: DefaultFetchTimeout},
		baseURL:    DefaultSearchURL,
		apiKey:     apiKey,
		engineID:   engineID,
		maxResults: 3,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		delays:     DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query builds the search expression for q.
func Query(q diraudit.SearchQuery) string {
	return fmt.Sprintf(`site:%s "%s" %s`, q.Domain, q.Name, q.Location)
}

// Search implements diraudit.Searcher.
func (s *Searcher) Search(ctx context.Context, q diraudit.SearchQuery) ([]string, error) {
	if q.Domain == "" || q.Name == "" {
		return nil, diraudit.Errorf(diraudit.EINVALID, "search requires a name and a domain")
	}
	if s.apiKey == "" || s.engineID == "" {
		return nil, diraudit.Errorf(diraudit.EINVALID, "search API key and engine ID required")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	num := s.maxResults
	if num > maxSearchResults {
		num = maxSearchResults
	}
	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("cx", s.engineID)
	params.Set("q", Query(q))
	params.Set("num", strconv.Itoa(num))

	body, err := FetchWithRetryDelays(ctx, s.baseURL+"?"+params.Encode(), s.get, s.retryLog, s.delays)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, diraudit.Errorf(diraudit.EINVALID, "decoding search response: %v", err)
	}

	return filterLinks(resp.Items, q.Domain, s.maxResults), nil
}

// get performs one API request. Rate limiting and server errors are
// transient; other non-200 statuses are permanent.
func (s *Searcher) get(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return string(body), nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", fmt.Errorf("search API returned HTTP %d", resp.StatusCode)
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return "", diraudit.Errorf(diraudit.EFORBIDDEN, "search API returned HTTP %d", resp.StatusCode)
	default:
		return "", diraudit.Errorf(diraudit.EINVALID, "search API returned HTTP %d", resp.StatusCode)
	}
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Link string `json:"link"`
}

// filterLinks keeps links whose host contains domain, in order, without
// duplicates, up to limit.
func filterLinks(items []searchItem, domain string, limit int) []string {
	domain = strings.ToLower(domain)
	seen := make(map[string]bool)
	var links []string
	for _, item := range items {
		if len(links) >= limit {
			break
		}
		u, err := url.Parse(item.Link)
		if err != nil || !strings.Contains(strings.ToLower(u.Host), domain) {
			continue
		}
		if seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		links = append(links, item.Link)
	}
	return links
}

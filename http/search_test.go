package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/diraudit"
	diraudithttp "github.com/fwojciec/diraudit/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return srv
}

func writeLinks(w http.ResponseWriter, links ...string) {
	items := make([]map[string]string, 0, len(links))
	for _, l := range links {
		items = append(items, map[string]string{"link": l})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

func newTestSearcher(srv *httptest.Server, opts ...diraudithttp.SearcherOption) *diraudithttp.Searcher {
	opts = append([]diraudithttp.SearcherOption{
		diraudithttp.WithBaseURL(srv.URL),
		diraudithttp.WithSearchInterval(0),
		diraudithttp.WithRetryDelays([]time.Duration{time.Millisecond}),
	}, opts...)
	return diraudithttp.NewSearcher("key", "engine", opts...)
}

func TestQuery(t *testing.T) {
	t.Parallel()

	q := diraudit.SearchQuery{Name: "Jane Doe", Location: "Austin, TX", Domain: "vitals.com"}

	assert.Equal(t, `site:vitals.com "Jane Doe" Austin, TX`, diraudithttp.Query(q))
}

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	query := diraudit.SearchQuery{Name: "Jane Doe", Location: "Austin, TX", Domain: "vitals.com"}

	t.Run("sends query parameters", func(t *testing.T) {
		t.Parallel()

		params := make(chan map[string]string, 1)
		srv := searchServer(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			params <- map[string]string{"key": q.Get("key"), "cx": q.Get("cx"), "q": q.Get("q"), "num": q.Get("num")}
			writeLinks(w)
		})

		_, err := newTestSearcher(srv, diraudithttp.WithMaxResults(3)).Search(context.Background(), query)

		require.NoError(t, err)
		got := <-params
		assert.Equal(t, "key", got["key"])
		assert.Equal(t, "engine", got["cx"])
		assert.Equal(t, `site:vitals.com "Jane Doe" Austin, TX`, got["q"])
		assert.Equal(t, "3", got["num"])
	})

	t.Run("filters to directory hosts and bounds results", func(t *testing.T) {
		t.Parallel()

		srv := searchServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeLinks(w,
				"https://www.vitals.com/doctors/jane-doe",
				"https://example.com/vitals.com",
				"https://WWW.VITALS.COM/doctors/jane-doe-2",
				"https://www.vitals.com/doctors/jane-doe",
				"https://www.vitals.com/doctors/jane-doe-3",
				"https://www.vitals.com/doctors/jane-doe-4",
			)
		})

		links, err := newTestSearcher(srv, diraudithttp.WithMaxResults(3)).Search(context.Background(), query)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.vitals.com/doctors/jane-doe",
			"https://WWW.VITALS.COM/doctors/jane-doe-2",
			"https://www.vitals.com/doctors/jane-doe-3",
		}, links)
	})

	t.Run("returns empty result when nothing found", func(t *testing.T) {
		t.Parallel()

		srv := searchServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"searchInformation":{"totalResults":"0"}}`))
		})

		links, err := newTestSearcher(srv).Search(context.Background(), query)

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("retries server errors", func(t *testing.T) {
		t.Parallel()

		var calls int32
		srv := searchServer(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			writeLinks(w, "https://www.vitals.com/doctors/jane-doe")
		})

		links, err := newTestSearcher(srv).Search(context.Background(), query)

		require.NoError(t, err)
		assert.Len(t, links, 1)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("does not retry rejected key", func(t *testing.T) {
		t.Parallel()

		var calls int32
		srv := searchServer(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := newTestSearcher(srv).Search(context.Background(), query)

		assert.Equal(t, diraudit.EFORBIDDEN, diraudit.ErrorCode(err))
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("rejects malformed response", func(t *testing.T) {
		t.Parallel()

		srv := searchServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		})

		_, err := newTestSearcher(srv).Search(context.Background(), query)

		assert.Equal(t, diraudit.EINVALID, diraudit.ErrorCode(err))
	})

	t.Run("requires credentials", func(t *testing.T) {
		t.Parallel()

		_, err := diraudithttp.NewSearcher("", "").Search(context.Background(), query)

		assert.Equal(t, diraudit.EINVALID, diraudit.ErrorCode(err))
	})

	t.Run("requires domain", func(t *testing.T) {
		t.Parallel()

		_, err := diraudithttp.NewSearcher("k", "e").Search(context.Background(), diraudit.SearchQuery{Name: "Jane"})

		assert.Equal(t, diraudit.EINVALID, diraudit.ErrorCode(err))
	})

	t.Run("paces queries", func(t *testing.T) {
		t.Parallel()

		srv := searchServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeLinks(w)
		})
		s := newTestSearcher(srv, diraudithttp.WithSearchInterval(50*time.Millisecond))

		start := time.Now()
		for i := 0; i < 3; i++ {
			_, err := s.Search(context.Background(), query)
			require.NoError(t, err)
		}

		assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	})
}

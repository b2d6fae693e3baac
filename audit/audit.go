// Package audit runs a roster through search, fetch, extraction and
// comparison for every configured directory.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/fwojciec/diraudit"
	"golang.org/x/sync/errgroup"
)

// Auditor orchestrates an audit run. The unit of work is one doctor on one
// directory; units run concurrently up to Concurrency, each with its own
// fetcher session.
type Auditor struct {
	Searcher    diraudit.Searcher
	Fetchers    diraudit.FetcherFactory
	Parser      diraudit.PageParser
	Extractors  diraudit.ExtractorRegistry
	Comparator  diraudit.ProfileComparer
	RateLimiter diraudit.DomainLimiter
	Directories []string
	Concurrency int
	Logger      *slog.Logger
}

// ProgressEvent reports progress during an audit run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Doctor    string
	Directory string
	Records   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting audit progress. It is never
// called concurrently.
type ProgressFunc func(event ProgressEvent)

// unitResult holds the outcome of one doctor on one directory.
type unitResult struct {
	doctor    int
	directory int
	records   []*diraudit.ComparisonRecord
	err       error
}

// Audit compares every roster entry against every directory and returns
// the records ordered by roster entry, then directory, then search rank.
//
// A unit that panics is recovered and all records of that doctor are
// dropped; the other doctors are unaffected. Canceling ctx stops the run
// and returns the context error.
func (a *Auditor) Audit(ctx context.Context, roster []*diraudit.RosterEntry, progress ProgressFunc) ([]*diraudit.ComparisonRecord, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	for i, entry := range roster {
		if err := entry.Validate(); err != nil {
			return nil, diraudit.Errorf(diraudit.EINVALID, "roster entry %d: %s", i+1, diraudit.ErrorMessage(err))
		}
	}

	cfg := diraudit.Config{Directories: a.Directories}
	dirs := cfg.DirectoryIDs()

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	total := len(roster) * len(dirs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan unitResult, total)

	var g errgroup.Group
	g.SetLimit(concurrency)

	go func() {
	schedule:
		for i, entry := range roster {
			for j, dir := range dirs {
				if ctx.Err() != nil {
					break schedule
				}
				g.Go(func() error {
					records, err := a.auditUnit(ctx, entry, dir)
					resultCh <- unitResult{doctor: i, directory: j, records: records, err: err}
					return nil
				})
			}
		}
		_ = g.Wait()
		close(resultCh)
	}()

	slots := make([][][]*diraudit.ComparisonRecord, len(roster))
	for i := range slots {
		slots[i] = make([][]*diraudit.ComparisonRecord, len(dirs))
	}
	failed := make(map[int]bool)

	var completed atomic.Int64
	for res := range resultCh {
		n := int(completed.Add(1))
		entry := roster[res.doctor]
		dir := dirs[res.directory]

		if res.err != nil {
			if ctx.Err() == nil {
				failed[res.doctor] = true
				a.logger().Error("doctor audit failed",
					"doctor", entry.Name,
					"directory", dir,
					"error", res.err,
				)
			}
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: n,
					Total:     total,
					Doctor:    entry.Name,
					Directory: dir,
					Error:     res.err,
				})
			}
			continue
		}

		slots[res.doctor][res.directory] = res.records
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: n,
				Total:     total,
				Doctor:    entry.Name,
				Directory: dir,
				Records:   len(res.records),
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []*diraudit.ComparisonRecord
	for i, perDir := range slots {
		if failed[i] {
			continue
		}
		for _, recs := range perDir {
			records = append(records, recs...)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: int(completed.Load()),
			Total:     total,
			Records:   len(records),
		})
	}

	return records, nil
}

// auditUnit searches one directory for one doctor and compares every
// candidate profile. Per-URL failures become degraded records; only a
// panic or cancellation fails the unit.
func (a *Auditor) auditUnit(ctx context.Context, entry *diraudit.RosterEntry, dir string) (records []*diraudit.ComparisonRecord, err error) {
	defer func() {
		if v := recover(); v != nil {
			records = nil
			err = fmt.Errorf("panic: %v", v)
		}
	}()

	urls, err := a.Searcher.Search(ctx, diraudit.SearchQuery{
		Name:     entry.Name,
		Location: entry.Location,
		Domain:   dir,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		a.logger().Warn("search failed",
			"doctor", entry.Name,
			"directory", dir,
			"error", err,
		)
		urls = nil
	}
	urls = dedupe(urls)

	if len(urls) == 0 {
		return []*diraudit.ComparisonRecord{diraudit.NewNoResultsRecord(entry, dir)}, nil
	}

	fetcher, err := a.Fetchers.OpenFetcher(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		for _, u := range urls {
			raw := diraudit.NewFailedProfile(dir, u, err)
			records = append(records, a.Comparator.CompareProfiles(entry, raw))
		}
		return records, nil
	}
	defer func() {
		if cerr := fetcher.Close(); cerr != nil {
			a.logger().Warn("closing fetcher", "directory", dir, "error", cerr)
		}
	}()

	for _, u := range urls {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		raw := a.profile(ctx, fetcher, dir, u)
		records = append(records, a.Comparator.CompareProfiles(entry, raw))
	}
	return records, nil
}

// profile fetches, parses and extracts one candidate URL. Any failure
// yields a degraded profile carrying the error.
func (a *Auditor) profile(ctx context.Context, fetcher diraudit.Fetcher, dir, url string) *diraudit.RawProfile {
	if a.RateLimiter != nil {
		if err := a.RateLimiter.Wait(ctx, dir); err != nil {
			return diraudit.NewFailedProfile(dir, url, err)
		}
	}

	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return diraudit.NewFailedProfile(dir, url, err)
	}

	page, err := a.Parser.Parse(url, html)
	if err != nil {
		return diraudit.NewFailedProfile(dir, url, err)
	}

	return a.Extractors.ExtractProfile(dir, page, url)
}

func (a *Auditor) validate() error {
	switch {
	case a.Searcher == nil:
		return diraudit.Errorf(diraudit.EINVALID, "auditor requires a searcher")
	case a.Fetchers == nil:
		return diraudit.Errorf(diraudit.EINVALID, "auditor requires a fetcher factory")
	case a.Parser == nil:
		return diraudit.Errorf(diraudit.EINVALID, "auditor requires a page parser")
	case a.Extractors == nil:
		return diraudit.Errorf(diraudit.EINVALID, "auditor requires an extractor registry")
	case a.Comparator == nil:
		return diraudit.Errorf(diraudit.EINVALID, "auditor requires a comparator")
	case len(a.Directories) == 0:
		return diraudit.Errorf(diraudit.EINVALID, "at least one directory required")
	}
	return nil
}

func (a *Auditor) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// dedupe removes repeated URLs, keeping first occurrences in order.
func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := urls[:0:0]
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

package rod

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/diraudit"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

var _ diraudit.Fetcher = (*Fetcher)(nil)

// Fetcher is one browser session opened by BrowserManager.OpenFetcher.
// Pages are loaded sequentially within the session's incognito context.
type Fetcher struct {
	browser *rod.Browser
	manager *BrowserManager

	pageTimeout time.Duration
	renderDelay time.Duration
	userAgent   string

	closeOnce sync.Once
	closeErr  error
}

// Fetch navigates to the URL, waits for load plus the render delay and
// returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.pageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.pageTimeout)
		defer cancel()
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.countPage()

	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", err
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.renderDelay > 0 {
		select {
		case <-time.After(f.renderDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return page.HTML()
}

// Close disposes the session's browser context. Close is safe to call
// multiple times.
func (f *Fetcher) Close() error {
	f.closeOnce.Do(func() {
		f.closeErr = f.browser.Close()
		f.manager.release()
	})
	return f.closeErr
}

package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/diraudit"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

var _ diraudit.FetcherFactory = (*BrowserManager)(nil)

// BrowserManager owns one headless Chrome process and hands out isolated
// fetcher sessions. Each session lives in its own incognito browser context,
// so cookies and storage never leak between audit units.
//
// Chrome accumulates memory over time, so the browser is recycled after
// maxPages page loads. Recycling only happens while no session is open.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int64
	maxPages  int64
	active    int
	mu        sync.Mutex
	closed    atomic.Bool

	pageTimeout time.Duration
	renderDelay time.Duration
	userAgent   string
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the maximum number of pages before the browser is recycled.
// Defaults to 75 if not specified.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithPageTimeout bounds each page load. Zero means no timeout beyond the
// caller's context.
func WithPageTimeout(d time.Duration) ManagerOption {
	return func(bm *BrowserManager) {
		bm.pageTimeout = d
	}
}

// WithRenderDelay sets how long a session waits after page load before
// reading the DOM, giving client-side scripts time to render.
func WithRenderDelay(d time.Duration) ManagerOption {
	return func(bm *BrowserManager) {
		bm.renderDelay = d
	}
}

// WithUserAgent overrides the browser's user agent.
func WithUserAgent(ua string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.userAgent = ua
	}
}

// NewBrowserManager creates a new BrowserManager that launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(bm)
	}

	if err := bm.launchBrowser(); err != nil {
		return nil, err
	}

	return bm, nil
}

// OpenFetcher opens a session in a fresh incognito context. The returned
// Fetcher must be closed; closing it disposes the context.
func (bm *BrowserManager) OpenFetcher(ctx context.Context) (diraudit.Fetcher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bm.closed.Load() {
		return nil, diraudit.Errorf(diraudit.EINTERNAL, "browser manager is closed")
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.active == 0 && atomic.LoadInt64(&bm.pageCount) >= bm.maxPages {
		bm.recycleBrowser()
	}

	incognito, err := bm.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("creating browser context: %w", err)
	}
	bm.active++

	return &Fetcher{
		browser:     incognito,
		manager:     bm,
		pageTimeout: bm.pageTimeout,
		renderDelay: bm.renderDelay,
		userAgent:   bm.userAgent,
	}, nil
}

// ActiveSessions returns the number of open fetcher sessions.
func (bm *BrowserManager) ActiveSessions() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.active
}

// Close releases browser resources. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	return bm.closeBrowser()
}

func (bm *BrowserManager) countPage() {
	atomic.AddInt64(&bm.pageCount, 1)
}

func (bm *BrowserManager) release() {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	bm.active--
}

// launchBrowser starts a new browser instance with stability flags.
func (bm *BrowserManager) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("window-size", "1920,1080").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	bm.browser = browser
	bm.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (bm *BrowserManager) closeBrowser() error {
	var err error
	if bm.browser != nil {
		err = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one.
// If launching the new browser fails, the old browser is kept.
// Must be called with mu held and no active sessions.
func (bm *BrowserManager) recycleBrowser() {
	oldBrowser := bm.browser
	oldLauncher := bm.launcher
	bm.browser = nil
	bm.launcher = nil

	if err := bm.launchBrowser(); err != nil {
		bm.browser = oldBrowser
		bm.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&bm.pageCount, 0)
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

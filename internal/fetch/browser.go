package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Default browser settings, used when no option overrides them.
const (
	defaultPageTimeout = 60 * time.Second
	defaultTableWait   = 10 * time.Second
	defaultSettleDelay = 5 * time.Second
	defaultUserAgent   = "f1scrape/1.0 (+https://github.com/f1data/f1scrape)"
)

// blockedURLPatterns are request patterns tabs never load. Heavy media and
// third-party analytics slow season pages down without contributing to the
// results table.
var blockedURLPatterns = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg", "*.ico",
	"*.mp4", "*.webm",
	"*.woff", "*.woff2", "*.ttf",
	"*.css",
	"*google-analytics*", "*googletagmanager*", "*doubleclick*", "*facebook*",
}

// Browser drives a headless Chrome instance for pages that build their
// content with JavaScript. It provides startup and shutdown of the Chrome
// process and loads each page in a fresh tab.
//
// Design decision: We keep one Chrome process per run rather than one per
// page because process startup dominates page cost. The caller starts the
// Browser once before iterating seasons and closes it when the loop ends.
type Browser struct {
	// headless controls whether Chrome runs without a visible window.
	headless bool

	// userAgent is sent with every request the browser makes.
	userAgent string

	// pageTimeout bounds a whole page fetch, navigation included.
	pageTimeout time.Duration

	// tableWait bounds the wait for the content selector after load.
	tableWait time.Duration

	// settleDelay is the fallback pause when the content selector never
	// appears, giving late scripts a final chance to run.
	settleDelay time.Duration

	// logger receives per-page debug output.
	logger *slog.Logger

	// allocCancel releases the Chrome process allocator (set by Start).
	allocCancel context.CancelFunc

	// browserCtx is the running browser's context (set by Start).
	browserCtx context.Context

	// browserCancel shuts the browser down (set by Start).
	browserCancel context.CancelFunc
}

// BrowserOption configures a Browser instance.
type BrowserOption func(*Browser)

// WithHeadless controls whether Chrome runs without a visible window.
// Headless is the default; a visible window helps when debugging layout
// changes on the source site.
func WithHeadless(headless bool) BrowserOption {
	return func(b *Browser) {
		b.headless = headless
	}
}

// WithUserAgent sets the User-Agent the browser sends.
func WithUserAgent(userAgent string) BrowserOption {
	return func(b *Browser) {
		b.userAgent = userAgent
	}
}

// WithPageTimeout bounds a whole page fetch.
func WithPageTimeout(timeout time.Duration) BrowserOption {
	return func(b *Browser) {
		b.pageTimeout = timeout
	}
}

// WithTableWait bounds the wait for the content selector after page load.
func WithTableWait(wait time.Duration) BrowserOption {
	return func(b *Browser) {
		b.tableWait = wait
	}
}

// WithSettleDelay sets the fallback pause used when the content selector
// never appears.
func WithSettleDelay(delay time.Duration) BrowserOption {
	return func(b *Browser) {
		b.settleDelay = delay
	}
}

// WithLogger sets the logger for per-page debug output.
func WithLogger(logger *slog.Logger) BrowserOption {
	return func(b *Browser) {
		b.logger = logger
	}
}

// NewBrowser creates a browser manager. Call Start to actually launch
// Chrome.
func NewBrowser(opts ...BrowserOption) *Browser {
	b := &Browser{
		headless:    true,
		userAgent:   defaultUserAgent,
		pageTimeout: defaultPageTimeout,
		tableWait:   defaultTableWait,
		settleDelay: defaultSettleDelay,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Start launches the Chrome process and keeps it running until Close.
// Returns ErrAlreadyStarted if the browser is already running.
func (b *Browser) Start(ctx context.Context) error {
	if b.IsRunning() {
		return ErrAlreadyStarted
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(b.userAgent),
	)
	if !b.headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Running an empty task list forces the Chrome process to launch, so a
	// missing executable surfaces here instead of on the first page.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("failed to start browser: %w", err)
	}

	b.allocCancel = allocCancel
	b.browserCtx = browserCtx
	b.browserCancel = browserCancel

	b.logger.Debug("browser started", "headless", b.headless)
	return nil
}

// Close shuts down the browser and its Chrome process.
// It's safe to call Close multiple times or on an unstarted instance.
func (b *Browser) Close() {
	if b.browserCancel != nil {
		b.browserCancel()
		b.browserCancel = nil
	}
	if b.allocCancel != nil {
		b.allocCancel()
		b.allocCancel = nil
	}
	b.browserCtx = nil
}

// IsRunning returns true if the browser is currently running.
func (b *Browser) IsRunning() bool {
	return b.browserCtx != nil
}

// FetchPage loads url in a new tab, waits for the content named by
// waitSelector to render, and returns the assembled HTML.
//
// The wait is bounded: if the selector does not appear within the table
// wait, the fetch falls back to a fixed settle delay and returns the page
// as-is, so a season page with no results table still reaches the caller,
// who detects and reports the missing table.
func (b *Browser) FetchPage(ctx context.Context, url, waitSelector string) (string, error) {
	if !b.IsRunning() {
		return "", ErrNotStarted
	}

	// Each page gets a fresh tab so cookies, storage, and scripts from one
	// season never bleed into the next.
	tabCtx, tabCancel := chromedp.NewContext(b.browserCtx)
	defer tabCancel()

	runCtx, runCancel := context.WithTimeout(tabCtx, b.pageTimeout)
	defer runCancel()

	// The tab context descends from the browser, not from ctx. Watch the
	// caller's context so cancellation aborts a fetch already in flight.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			runCancel()
		case <-watchDone:
		}
	}()

	var html string
	tasks := chromedp.Tasks{
		// Set User-Agent via the emulation API, which also covers requests
		// issued by page scripts.
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetUserAgentOverride(b.userAgent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return network.SetBlockedURLs(blockedURLPatterns).Do(ctx)
		}),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		b.waitForContent(waitSelector),
		chromedp.OuterHTML("html", &html),
	}

	if err := chromedp.Run(runCtx, tasks); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	b.logger.Debug("page fetched", "url", url, "htmlLen", len(html))
	return html, nil
}

// waitForContent waits until waitSelector appears in the page, up to the
// table wait. When the selector never renders the action falls back to the
// settle delay instead of failing, because an absent table is a condition
// the caller reports per page, not a fetch error. An empty selector skips
// straight to the settle delay.
func (b *Browser) waitForContent(waitSelector string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if waitSelector == "" {
			return chromedp.Sleep(b.settleDelay).Do(ctx)
		}

		waitCtx, cancel := context.WithTimeout(ctx, b.tableWait)
		defer cancel()

		if err := chromedp.WaitReady(waitSelector, chromedp.ByQuery).Do(waitCtx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.Debug("content selector did not appear, settling",
				"selector", waitSelector,
				"waited", b.tableWait,
			)
			return chromedp.Sleep(b.settleDelay).Do(ctx)
		}
		return nil
	})
}

package steamdb

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// Renderer loads the catalog page in headless Chrome so rows injected by
// scripts are present in the markup.
type Renderer struct {
	BaseURL string
	Wait    time.Duration
	Timeout time.Duration
	opts    []chromedp.ExecAllocatorOption
}

func NewRenderer() *Renderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
		chromedp.WindowSize(1920, 1080),
	)
	return &Renderer{
		BaseURL: BaseURL,
		Wait:    2 * time.Second,
		Timeout: 45 * time.Second,
		opts:    opts,
	}
}

// Page renders the page once and returns a snapshot of it.
func (r *Renderer) Page(ctx context.Context, appID string) (*Page, error) {
	tab, err := r.Open(ctx, appID)
	if err != nil {
		return nil, err
	}
	defer tab.Close()
	return tab.Snapshot(ctx)
}

// Open navigates a new tab to the app's page and keeps it alive so it can be
// snapshotted repeatedly while content streams in.
func (r *Renderer) Open(ctx context.Context, appID string) (*Tab, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	closeTab := func() {
		cancelTab()
		cancelAlloc()
	}

	// start the browser on tabCtx so the navigation timeout below does not own it
	if err := chromedp.Run(tabCtx); err != nil {
		closeTab()
		return nil, fmt.Errorf("chromedp start failed: %w", err)
	}

	url := fmt.Sprintf("%s%s/", r.BaseURL, appID)
	log.Printf("[%s] Navigating to %s", Name, url)

	navCtx, cancelNav := context.WithTimeout(tabCtx, r.Timeout)
	defer cancelNav()
	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.Sleep(r.Wait),
	)
	if err != nil {
		closeTab()
		return nil, fmt.Errorf("chromedp failed: %w", err)
	}

	return &Tab{ctx: tabCtx, timeout: r.Timeout, close: closeTab}, nil
}

// Tab is an open rendered page.
type Tab struct {
	ctx     context.Context
	timeout time.Duration
	close   func()
}

// Snapshot captures the tab's current outerHTML.
func (t *Tab) Snapshot(ctx context.Context) (*Page, error) {
	snapCtx, cancel := context.WithTimeout(t.ctx, t.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	if err := chromedp.Run(snapCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("chromedp snapshot failed: %w", err)
	}
	return ParsePage(bytes.NewBufferString(html))
}

func (t *Tab) Close() {
	t.close()
}

package steamdb

import "context"

// Loader reads the catalog page for one app. Scraper and Renderer both
// implement it.
type Loader interface {
	Page(ctx context.Context, appID string) (*Page, error)
}

// NewLoader returns a Renderer when browser is set, otherwise a Scraper.
// An empty baseURL keeps the public catalog.
func NewLoader(baseURL string, browser bool) Loader {
	if browser {
		r := NewRenderer()
		if baseURL != "" {
			r.BaseURL = baseURL
		}
		return r
	}

	s := NewScraper()
	if baseURL != "" {
		s.BaseURL = baseURL
	}
	// a configured catalog may live on any host
	s.Collector.AllowedDomains = nil
	return s
}

// SourceFor adapts a Loader for Observe. A Renderer keeps one tab open for
// the whole observation; any other Loader re-reads the page on each tick.
// The returned func releases the source.
func SourceFor(ctx context.Context, l Loader, appID string) (Source, func(), error) {
	if r, ok := l.(*Renderer); ok {
		tab, err := r.Open(ctx, appID)
		if err != nil {
			return nil, nil, err
		}
		return tab, tab.Close, nil
	}

	return SourceFunc(func(ctx context.Context) (*Page, error) {
		return l.Page(ctx, appID)
	}), func() {}, nil
}

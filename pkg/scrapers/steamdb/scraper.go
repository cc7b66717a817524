package steamdb

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	Name    = "STEAMDB"
	BaseURL = "https://steamdb.info/app/"
)

// Scraper fetches the static catalog page for an app.
type Scraper struct {
	Collector *colly.Collector
	BaseURL   string
}

func NewScraper() *Scraper {
	c := colly.NewCollector(
		colly.AllowedDomains("steamdb.info", "127.0.0.1"), // localhost for testing
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
		// clones share the visited store; the same page is read on every refresh
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(30 * time.Second)
	return &Scraper{
		Collector: c,
		BaseURL:   BaseURL,
	}
}

func (s *Scraper) URL(appID string) string {
	return fmt.Sprintf("%s%s/", s.BaseURL, appID)
}

// Page visits the catalog page for appID and returns its markup.
func (s *Scraper) Page(ctx context.Context, appID string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// callbacks are per visit, so work on a clone
	c := s.Collector.Clone()
	c.Context = ctx

	var page *Page
	c.OnHTML("html", func(e *colly.HTMLElement) {
		if page == nil {
			page = NewPage(e.DOM)
		}
	})

	url := s.URL(appID)
	log.Printf("Navigating to %s", url)
	if err := c.Visit(url); err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("no markup received from %s", url)
	}
	return page, nil
}

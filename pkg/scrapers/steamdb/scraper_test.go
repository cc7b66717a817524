package steamdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScraper_Page(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Logf("Received request for: %s", r.URL.Path)
		if r.URL.Path != "/app/500/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "<!DOCTYPE html><html><body>%s%s%s</body></html>", dlcFixture, achievementFixture, depotFixture)
	}))
	defer ts.Close()

	scraper := NewScraper()
	scraper.BaseURL = ts.URL + "/app/"
	scraper.Collector.AllowedDomains = nil

	page, err := scraper.Page(context.Background(), "500")
	require.NoError(t, err)

	snap := Collect(page)
	assert.Len(t, snap.Dlc, 4)
	assert.Equal(t, "ACH_WIN", snap.Achievements[0].Name)
	assert.Equal(t, "502", snap.Depots[1].ID)

	// the collector is reusable because callbacks live on a clone
	again, err := scraper.Page(context.Background(), "500")
	require.NoError(t, err)
	assert.True(t, snap.Equal(Collect(again)))
}

func TestScraper_PageNotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	scraper := NewScraper()
	scraper.BaseURL = ts.URL + "/app/"
	scraper.Collector.AllowedDomains = nil

	_, err := scraper.Page(context.Background(), "500")
	assert.Error(t, err)
}

func TestScraper_PageCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScraper().Page(ctx, "500")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScraper_PageCancelledDuringVisit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
		}
	}))
	defer ts.Close()

	scraper := NewScraper()
	scraper.BaseURL = ts.URL + "/app/"
	scraper.Collector.AllowedDomains = nil

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := scraper.Page(ctx, "500")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

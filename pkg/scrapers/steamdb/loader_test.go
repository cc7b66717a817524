package steamdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	s, ok := NewLoader("http://127.0.0.1:1/app/", false).(*Scraper)
	require.True(t, ok)
	assert.Equal(t, "http://127.0.0.1:1/app/", s.BaseURL)
	assert.Nil(t, s.Collector.AllowedDomains)

	s, ok = NewLoader("", false).(*Scraper)
	require.True(t, ok)
	assert.Equal(t, BaseURL, s.BaseURL)

	r, ok := NewLoader("http://catalog.local/app/", true).(*Renderer)
	require.True(t, ok)
	assert.Equal(t, "http://catalog.local/app/", r.BaseURL)
}

func TestSourceForScraperRereadsPage(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprintf(w, "<html><body>%s</body></html>", dlcFixture)
	}))
	defer ts.Close()

	src, release, err := SourceFor(context.Background(), NewLoader(ts.URL+"/app/", false), "500")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for range 2 {
		page, err := src.Snapshot(ctx)
		require.NoError(t, err)
		assert.Len(t, page.CollectDlc(), 4)
	}
	assert.Equal(t, int32(2), hits.Load())
}

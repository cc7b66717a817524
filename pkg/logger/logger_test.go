package logger

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicatorFoldsRepeats(t *testing.T) {
	var buf bytes.Buffer
	d := New(log.New(&buf, "", 0), time.Hour)

	d.Printf("Cache hit for %s", "500")
	d.Printf("Cache hit for %s", "500")
	d.Printf("Cache hit for %s", "500")
	d.Printf("Fetching %s", "600")
	d.Flush()

	assert.Equal(t, "Cache hit for 500 (3)\nFetching 600\n", buf.String())
}

func TestDeduplicatorFlushesAfterQuietPeriod(t *testing.T) {
	var buf bytes.Buffer
	d := New(log.New(&buf, "", 0), 10*time.Millisecond)

	d.Printf("tick")

	assert.Eventually(t, func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return buf.String() == "tick\n"
	}, time.Second, 5*time.Millisecond)
}

package logger

import (
	"fmt"
	"log"
	"sync"
	"time"
)

var std = New(log.Default(), 2*time.Second)

// Deduplicator folds identical consecutive messages into one line carrying a
// repeat count. Pending messages are flushed after a quiet period.
type Deduplicator struct {
	mu         sync.Mutex
	out        *log.Logger
	lastMsg    string
	count      int
	flushDelay time.Duration
	timer      *time.Timer
}

func New(out *log.Logger, flushDelay time.Duration) *Deduplicator {
	return &Deduplicator{out: out, flushDelay: flushDelay}
}

func (d *Deduplicator) flushLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.count == 0 {
		return
	}
	if d.count == 1 {
		d.out.Print(d.lastMsg)
	} else {
		d.out.Printf("%s (%d)", d.lastMsg, d.count)
	}
	d.count = 0
	d.lastMsg = ""
}

// Flush writes out any pending message immediately.
func (d *Deduplicator) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flushLocked()
}

func (d *Deduplicator) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	d.mu.Lock()
	defer d.mu.Unlock()

	if msg != d.lastMsg || d.count == 0 {
		d.flushLocked()
		d.lastMsg = msg
	}
	d.count++

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.flushDelay, d.Flush)
}

// Dedup logs through the process-wide deduplicator.
func Dedup(format string, args ...any) {
	std.Printf(format, args...)
}

// Warnf is Dedup with a WARN prefix, used for failures that are swallowed.
func Warnf(format string, args ...any) {
	std.Printf("WARN "+format, args...)
}

package diag

import (
	"fmt"
	"io"
	"sync"
)

// Collector writes one line per record to w and counts records per reason.
// It is safe for concurrent use.
type Collector struct {
	mu     sync.Mutex
	w      io.Writer
	counts map[Reason]int
	total  int
}

// NewCollector returns a Collector writing to w. A nil w only counts.
func NewCollector(w io.Writer) *Collector {
	return &Collector{w: w, counts: make(map[Reason]int)}
}

// Record implements Sink.
func (c *Collector) Record(r Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[r.Reason]++
	c.total++
	if c.w != nil {
		// write errors are ignored; the stream is observational only
		_, _ = fmt.Fprintln(c.w, r.String())
	}
}

// Count returns how many records carried reason r.
func (c *Collector) Count(r Reason) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counts[r]
}

// Total returns the number of records seen.
func (c *Collector) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.total
}

// Counts returns a copy of the per-reason counters.
func (c *Collector) Counts() map[Reason]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[Reason]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}

	return out
}

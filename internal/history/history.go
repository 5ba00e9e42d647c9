package history

import (
	"strings"
	"sync"
	"time"
)

// Entry is one submitted query and how it ended.
type Entry struct {
	Query  string
	Ticker string // empty when the lookup failed
	Failed bool
	At     time.Time
}

// History is a bounded ring buffer of recent queries. Safe for concurrent use.
type History struct {
	mu    sync.RWMutex
	buf   []Entry
	size  int
	start int
	count int
}

// New creates a history holding at most capacity entries.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = 1
	}
	return &History{
		buf:  make([]Entry, capacity),
		size: capacity,
	}
}

// Add records e. Resubmitting the latest query replaces it rather than
// adding a duplicate.
func (h *History) Add(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count > 0 {
		last := (h.start + h.count - 1) % h.size
		if strings.EqualFold(strings.TrimSpace(h.buf[last].Query), strings.TrimSpace(e.Query)) {
			h.buf[last] = e
			return
		}
	}
	if h.count < h.size {
		h.buf[(h.start+h.count)%h.size] = e
		h.count++
		return
	}
	// overwrite oldest
	h.buf[h.start] = e
	h.start = (h.start + 1) % h.size
}

// Recent returns up to n entries, newest first.
func (h *History) Recent(n int) []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n <= 0 || h.count == 0 {
		return nil
	}
	if n > h.count {
		n = h.count
	}
	out := make([]Entry, n)
	newest := h.start + h.count - 1
	for i := 0; i < n; i++ {
		out[i] = h.buf[(newest-i)%h.size]
	}
	return out
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

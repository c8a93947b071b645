package roast

import (
	"sync"

	"github.com/kjannette/ifsol-backend/internal/models"
)

const DefaultRecentCapacity = 20

// Recent keeps the last N roasts in a ring buffer. Safe for concurrent use.
type Recent struct {
	mu    sync.Mutex
	buf   []models.Roast
	next  int
	count int
}

func NewRecent(capacity int) *Recent {
	if capacity <= 0 {
		capacity = DefaultRecentCapacity
	}
	return &Recent{buf: make([]models.Roast, capacity)}
}

// Push adds r, evicting the oldest entry when full.
func (r *Recent) Push(roast models.Roast) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = roast
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Snapshot returns the held roasts, newest first.
func (r *Recent) Snapshot() []models.Roast {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Roast, 0, r.count)
	for i := 1; i <= r.count; i++ {
		out = append(out, r.buf[(r.next-i+len(r.buf))%len(r.buf)])
	}
	return out
}

func (r *Recent) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

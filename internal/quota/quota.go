// Package quota caps the number of comparisons served per UTC day. Each
// comparison costs an LLM call, so the cap bounds spend.
package quota

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kjannette/ifsol-backend/internal/models"
)

var ErrLimitReached = errors.New("daily comparison limit reached")

// DailyCounter abstracts the comparison-counting dependency so Guardian
// can be tested without a real database.
type DailyCounter interface {
	CountToday(ctx context.Context) (int, error)
}

type Guardian struct {
	maxDaily int
	counter  DailyCounter
}

// NewGuardian returns a guardian allowing maxDaily comparisons per day.
// Zero disables the check.
func NewGuardian(maxDaily int, counter DailyCounter) *Guardian {
	return &Guardian{maxDaily: maxDaily, counter: counter}
}

func (g *Guardian) Enabled() bool { return g.maxDaily > 0 && g.counter != nil }

// Check returns nil if another comparison is allowed today.
func (g *Guardian) Check(ctx context.Context) error {
	if !g.Enabled() {
		return nil
	}
	count, err := g.counter.CountToday(ctx)
	if err != nil {
		return fmt.Errorf("unable to verify daily comparison count: %w", err)
	}
	if count >= g.maxDaily {
		return fmt.Errorf("%w: %d of %d used today", ErrLimitReached, count, g.maxDaily)
	}
	return nil
}

// MemoryCounter counts comparisons in process memory, resetting at
// midnight UTC. It records comparisons when no database is configured.
type MemoryCounter struct {
	mu    sync.Mutex
	day   string
	count int
	now   func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{now: time.Now}
}

func (m *MemoryCounter) Record(_ context.Context, _ *models.ComparisonRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roll()
	m.count++
	return nil
}

func (m *MemoryCounter) CountToday(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roll()
	return m.count, nil
}

func (m *MemoryCounter) roll() {
	today := m.now().UTC().Format(models.DateLayout)
	if today != m.day {
		m.day = today
		m.count = 0
	}
}

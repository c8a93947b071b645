// Package fallback holds the static SOL/USD price table used when the live
// price source is unavailable.
package fallback

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/kjannette/ifsol-backend/internal/models"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Entry is one month-start price.
type Entry struct {
	Date  time.Time
	Price float64
}

// Table is an immutable, chronologically ordered set of month-start prices.
// The zero value is an empty table. Safe for concurrent reads.
type Table struct {
	entries []Entry
}

// New builds a table from "YYYY-MM-DD" → price pairs. Entries are ordered
// by date; that order is the table's iteration order.
func New(prices map[string]float64) (*Table, error) {
	if len(prices) == 0 {
		return nil, fmt.Errorf("fallback table: no entries")
	}
	entries := make([]Entry, 0, len(prices))
	for ds, p := range prices {
		d, err := time.Parse(dateLayout, ds)
		if err != nil {
			return nil, fmt.Errorf("fallback table: bad date %q: %w", ds, err)
		}
		if p <= 0 {
			return nil, fmt.Errorf("fallback table: non-positive price %.4f for %s", p, ds)
		}
		entries = append(entries, Entry{Date: d, Price: p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return &Table{entries: entries}, nil
}

// Default returns the compiled-in table.
func Default() *Table {
	t, err := New(solanaMonthly)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadYAML reads a table from a YAML mapping of dates to prices.
func LoadYAML(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fallback table: read %q: %w", path, err)
	}
	var prices map[string]float64
	if err := yaml.Unmarshal(data, &prices); err != nil {
		return nil, fmt.Errorf("fallback table: parse %q: %w", path, err)
	}
	t, err := New(prices)
	if err != nil {
		return nil, fmt.Errorf("%w (from %q)", err, path)
	}
	return t, nil
}

func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in iteration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Points returns the table as price points, ascending by timestamp.
func (t *Table) Points() models.PriceSeries {
	out := make(models.PriceSeries, len(t.entries))
	for i, e := range t.entries {
		out[i] = models.NewPricePoint(e.Date, e.Price)
	}
	return out
}

// Nearest returns the entry closest in absolute time to at. When two entries
// are equally distant the first in iteration order (the earlier date) wins.
// ok is false only for an empty table.
func (t *Table) Nearest(at time.Time) (e Entry, ok bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	best := 0
	bestDist := absDuration(t.entries[0].Date.Sub(at))
	for i := 1; i < len(t.entries); i++ {
		d := absDuration(t.entries[i].Date.Sub(at))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return t.entries[best], true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kjannette/ifsol-backend/internal/pricing"
	"golang.org/x/time/rate"
)

// DegradationAlerts turns price fallbacks into webhook messages, at most one
// per component per interval. Suppressed events are counted and reported
// with the next message.
type DegradationAlerts struct {
	send     func(Alert)
	interval time.Duration

	mu         sync.Mutex
	limiters   map[string]*rate.Limiter
	suppressed map[string]int
}

func NewDegradationAlerts(s *Sender, interval time.Duration) *DegradationAlerts {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &DegradationAlerts{
		send: func(al Alert) {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := s.Send(ctx, al); err != nil {
					fmt.Printf("[ALERT ERROR] %v\n", err)
				}
			}()
		},
		interval:   interval,
		limiters:   make(map[string]*rate.Limiter),
		suppressed: make(map[string]int),
	}
}

var _ pricing.DegradationReporter = (*DegradationAlerts)(nil)

func (a *DegradationAlerts) Degraded(component string, reason pricing.Reason, err error) {
	a.mu.Lock()
	lim, ok := a.limiters[component]
	if !ok {
		lim = rate.NewLimiter(rate.Every(a.interval), 1)
		a.limiters[component] = lim
	}
	if !lim.Allow() {
		a.suppressed[component]++
		a.mu.Unlock()
		return
	}
	skipped := a.suppressed[component]
	a.suppressed[component] = 0
	a.mu.Unlock()

	al := Alert{
		Title: fmt.Sprintf("Serving fallback %s price: %s", component, reason),
		At:    time.Now().UTC(),
	}
	if err != nil {
		al.Detail = err.Error()
	}
	if skipped > 0 {
		al.Title += fmt.Sprintf(" [+%d more since last alert]", skipped)
	}
	a.send(al)
}

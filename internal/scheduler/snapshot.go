package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kjannette/ifsol-backend/internal/models"
	"github.com/kjannette/ifsol-backend/internal/pricing"
)

var ErrNoLivePrice = errors.New("no live price source answered")

// SnapshotRecorder persists a live price sample.
type SnapshotRecorder interface {
	Record(ctx context.Context, price float64, ts time.Time, source string) (*models.PriceSnapshot, error)
}

type SnapshotSchedulerConfig struct {
	Interval   time.Duration // e.g. 1*time.Hour
	OnSnapshot func(s *models.PriceSnapshot)
}

// SnapshotScheduler samples the live SOL price on a fixed interval and
// records it. Sources are tried in order; fallback prices are never recorded.
type SnapshotScheduler struct {
	sources  []pricing.SpotSource
	recorder SnapshotRecorder
	cfg      SnapshotSchedulerConfig

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

func NewSnapshotScheduler(recorder SnapshotRecorder, cfg SnapshotSchedulerConfig, sources ...pricing.SpotSource) *SnapshotScheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 1 * time.Hour
	}
	return &SnapshotScheduler{
		sources:  sources,
		recorder: recorder,
		cfg:      cfg,
	}
}

func (s *SnapshotScheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		fmt.Println("[SNAPSHOT] Already running")
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	// Initial snapshot on startup (fire-and-forget)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.snapshot(ctx); err != nil {
			fmt.Printf("[SNAPSHOT] Initial snapshot failed: %v\n", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				if _, err := s.snapshot(ctx); err != nil {
					fmt.Printf("[SNAPSHOT] Snapshot failed: %v\n", err)
				}
				cancel()
			}
		}
	}()

	fmt.Printf("[SNAPSHOT] Started (every %s)\n", s.cfg.Interval)
}

func (s *SnapshotScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
	fmt.Println("[SNAPSHOT] Stopped")
}

func (s *SnapshotScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// SnapshotNow takes a snapshot outside the normal schedule.
func (s *SnapshotScheduler) SnapshotNow(ctx context.Context) (*models.PriceSnapshot, error) {
	fmt.Println("[SNAPSHOT] Manual snapshot triggered")
	return s.snapshot(ctx)
}

func (s *SnapshotScheduler) snapshot(ctx context.Context) (*models.PriceSnapshot, error) {
	var errs []error
	for _, src := range s.sources {
		name := pricing.SourceName(src)
		price, err := src.SpotPrice(ctx)
		if err == nil && price <= 0 {
			err = fmt.Errorf("non-positive price %.4f", price)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		snap, err := s.recorder.Record(ctx, price, time.Now().UTC(), name)
		if err != nil {
			return nil, fmt.Errorf("record snapshot: %w", err)
		}
		fmt.Printf("[SNAPSHOT] SOL $%.2f from %s (day %s)\n", snap.Price, snap.Source, snap.Day)
		if s.cfg.OnSnapshot != nil {
			s.cfg.OnSnapshot(snap)
		}
		return snap, nil
	}
	return nil, errors.Join(append([]error{ErrNoLivePrice}, errs...)...)
}

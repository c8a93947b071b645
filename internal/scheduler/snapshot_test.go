package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kjannette/ifsol-backend/internal/models"
	"github.com/kjannette/ifsol-backend/internal/repository"
	"github.com/kjannette/ifsol-backend/internal/scheduler"
	"github.com/kjannette/ifsol-backend/internal/testutil"
)

type stubSource struct {
	name  string
	price float64
	err   error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) SpotPrice(context.Context) (float64, error) { return s.price, s.err }

type memRecorder struct {
	mu    sync.Mutex
	snaps []models.PriceSnapshot
	err   error
}

func (m *memRecorder) Record(_ context.Context, price float64, ts time.Time, source string) (*models.PriceSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s := models.PriceSnapshot{ID: int64(len(m.snaps) + 1), Timestamp: ts, Price: price, Day: repository.Day(ts), Source: source}
	m.snaps = append(m.snaps, s)
	return &s, nil
}

func (m *memRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snaps)
}

func TestSnapshotNow_UsesFirstLiveSource(t *testing.T) {
	rec := &memRecorder{}
	var seen atomic.Int32
	sched := scheduler.NewSnapshotScheduler(rec, scheduler.SnapshotSchedulerConfig{
		OnSnapshot: func(*models.PriceSnapshot) { seen.Add(1) },
	},
		&stubSource{name: "coingecko", err: errors.New("status 429")},
		&stubSource{name: "chainlink", price: 141.9},
	)

	snap, err := sched.SnapshotNow(context.Background())
	if err != nil {
		t.Fatalf("SnapshotNow: %v", err)
	}
	if snap.Source != "chainlink" || snap.Price != 141.9 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if seen.Load() != 1 {
		t.Fatal("OnSnapshot callback was not called")
	}
}

func TestSnapshotNow_NoLiveSource(t *testing.T) {
	rec := &memRecorder{}
	sched := scheduler.NewSnapshotScheduler(rec, scheduler.SnapshotSchedulerConfig{},
		&stubSource{name: "coingecko", err: errors.New("timeout")},
		&stubSource{name: "chainlink", price: 0},
	)

	_, err := sched.SnapshotNow(context.Background())
	if !errors.Is(err, scheduler.ErrNoLivePrice) {
		t.Fatalf("expected ErrNoLivePrice, got %v", err)
	}
	if rec.count() != 0 {
		t.Fatal("fallback prices must not be recorded")
	}
	t.Logf("error: %v", err)
}

func TestSnapshotNow_RecorderError(t *testing.T) {
	rec := &memRecorder{err: errors.New("db down")}
	sched := scheduler.NewSnapshotScheduler(rec, scheduler.SnapshotSchedulerConfig{}, &stubSource{name: "coingecko", price: 140})

	if _, err := sched.SnapshotNow(context.Background()); err == nil {
		t.Fatal("expected recorder error")
	}
}

func TestSnapshotScheduler_StartStop(t *testing.T) {
	rec := &memRecorder{}
	sched := scheduler.NewSnapshotScheduler(rec, scheduler.SnapshotSchedulerConfig{Interval: 10 * time.Millisecond},
		&stubSource{name: "coingecko", price: 140})

	sched.Start()
	sched.Start() // second start is a no-op
	if !sched.Running() {
		t.Fatal("expected running")
	}

	deadline := time.Now().Add(2 * time.Second)
	for rec.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	sched.Stop()
	sched.Stop()
	if sched.Running() {
		t.Fatal("expected stopped")
	}
	if rec.count() < 3 {
		t.Fatalf("expected at least 3 snapshots, got %d", rec.count())
	}
}

func TestSnapshotScheduler_WithPriceRepo(t *testing.T) {
	pool := testutil.SetupPool(t)
	repo := repository.NewPriceRepo(pool)
	sched := scheduler.NewSnapshotScheduler(repo, scheduler.SnapshotSchedulerConfig{}, &stubSource{name: "coingecko", price: 142.37})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := sched.SnapshotNow(ctx); err != nil {
		t.Fatalf("SnapshotNow: %v", err)
	}

	latest, err := repo.GetLatest(ctx)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if latest == nil || latest.Price != 142.37 {
		t.Fatalf("snapshot not stored: %+v", latest)
	}
	t.Logf("Stored snapshot: %+v", latest)
}

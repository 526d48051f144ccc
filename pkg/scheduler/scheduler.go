package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/loader.go -pkg mocks -skip-ensure -fmt goimports . Loader
//go:generate moq -out mocks/pruner.go -pkg mocks -skip-ensure -fmt goimports . Pruner

// Scheduler runs the initial feed load, retrying it until it succeeds, and periodic history cleanup
type Scheduler struct {
	loader        Loader
	pruner        Pruner
	retryInterval time.Duration
	pruneInterval time.Duration
	retention     time.Duration
	wg            sync.WaitGroup
	cancel        context.CancelFunc
}

// Loader loads the feed, a no-op once loaded
type Loader interface {
	Load(ctx context.Context) error
}

// Pruner removes visits older than retention
type Pruner interface {
	PruneVisits(ctx context.Context, retention time.Duration) (int64, error)
}

// Config holds scheduler configuration
type Config struct {
	RetryInterval time.Duration
	PruneInterval time.Duration
	Retention     time.Duration
}

// NewScheduler creates a new scheduler instance, pruner may be nil
func NewScheduler(loader Loader, pruner Pruner, cfg Config) *Scheduler {
	if cfg.RetryInterval == 0 {
		cfg.RetryInterval = time.Minute
	}
	if cfg.PruneInterval == 0 {
		cfg.PruneInterval = 24 * time.Hour
	}
	if cfg.Retention == 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}

	return &Scheduler{
		loader:        loader,
		pruner:        pruner,
		retryInterval: cfg.RetryInterval,
		pruneInterval: cfg.PruneInterval,
		retention:     cfg.Retention,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loadWorker(ctx)

	if s.pruner != nil {
		s.wg.Add(1)
		go s.pruneWorker(ctx)
	}

	lgr.Printf("[INFO] scheduler started with retry interval %v, prune interval %v, retention %v",
		s.retryInterval, s.pruneInterval, s.retention)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// loadWorker loads the feed and retries failed loads until one succeeds
func (s *Scheduler) loadWorker(ctx context.Context) {
	defer s.wg.Done()

	// run immediately on start
	if s.load(ctx) {
		return
	}

	ticker := time.NewTicker(s.retryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.load(ctx) {
				return
			}
		}
	}
}

func (s *Scheduler) load(ctx context.Context) bool {
	if err := s.loader.Load(ctx); err != nil {
		if ctx.Err() == nil {
			lgr.Printf("[WARN] feed load failed, retry in %v: %v", s.retryInterval, err)
		}
		return false
	}
	return true
}

// pruneWorker periodically removes old visits
func (s *Scheduler) pruneWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pruneInterval)
	defer ticker.Stop()

	// run immediately on start
	s.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.prune(ctx)
		}
	}
}

func (s *Scheduler) prune(ctx context.Context) {
	n, err := s.pruner.PruneVisits(ctx, s.retention)
	if err != nil {
		lgr.Printf("[WARN] failed to prune visits: %v", err)
		return
	}
	if n > 0 {
		lgr.Printf("[DEBUG] pruned %d visits older than %v", n, s.retention)
	}
}

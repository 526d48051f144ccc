package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdeck/pkg/scheduler/mocks"
)

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(&mocks.LoaderMock{}, nil, Config{})
	assert.Equal(t, time.Minute, s.retryInterval)
	assert.Equal(t, 24*time.Hour, s.pruneInterval)
	assert.Equal(t, 30*24*time.Hour, s.retention)
}

func TestScheduler_LoadRetriedUntilSuccess(t *testing.T) {
	var attempts int32
	loader := &mocks.LoaderMock{LoadFunc: func(context.Context) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("fetch sources: down")
		}
		return nil
	}}

	s := NewScheduler(loader, nil, Config{RetryInterval: 10 * time.Millisecond})
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&attempts) == 3 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts), "no loads after success")
}

func TestScheduler_LoadOnceOnSuccess(t *testing.T) {
	loader := &mocks.LoaderMock{LoadFunc: func(context.Context) error { return nil }}

	s := NewScheduler(loader, nil, Config{RetryInterval: 5 * time.Millisecond})
	s.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	assert.Len(t, loader.LoadCalls(), 1)
}

func TestScheduler_Prune(t *testing.T) {
	var calls int32
	pruner := &mocks.PrunerMock{PruneVisitsFunc: func(_ context.Context, retention time.Duration) (int64, error) {
		if atomic.AddInt32(&calls, 1) == 2 {
			return 0, errors.New("db locked")
		}
		return 2, nil
	}}
	loader := &mocks.LoaderMock{LoadFunc: func(context.Context) error { return nil }}

	s := NewScheduler(loader, pruner, Config{PruneInterval: 10 * time.Millisecond, Retention: time.Hour})
	s.Start(context.Background())

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	for _, c := range pruner.PruneVisitsCalls() {
		assert.Equal(t, time.Hour, c.Retention)
	}
}

func TestScheduler_StopWhileRetrying(t *testing.T) {
	loader := &mocks.LoaderMock{LoadFunc: func(ctx context.Context) error { return errors.New("down") }}

	s := NewScheduler(loader, nil, Config{RetryInterval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.Eventually(t, func() bool { return len(loader.LoadCalls()) == 1 }, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		cancel()
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler didn't stop")
	}
}

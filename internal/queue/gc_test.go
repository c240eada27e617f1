package queue

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockDLQPurger struct {
	purgeFunc func(ctx context.Context, retention time.Duration) (int, error)
	called    bool
}

func (m *mockDLQPurger) PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error) {
	m.called = true
	if m.purgeFunc != nil {
		return m.purgeFunc(ctx, retention)
	}
	return 0, nil
}

func TestGarbageCollector_Collect(t *testing.T) {
	t.Parallel()

	mock := &mockDLQPurger{
		purgeFunc: func(ctx context.Context, retention time.Duration) (int, error) {
			if retention != 24*time.Hour {
				t.Errorf("retention = %v, want 24h", retention)
			}
			return 3, nil
		},
	}

	gc := NewGarbageCollector(mock, time.Hour, 24*time.Hour)
	if err := gc.collect(context.Background()); err != nil {
		t.Errorf("collect() error = %v", err)
	}
	if !mock.called {
		t.Error("PurgeOlderThan was not called")
	}
}

func TestGarbageCollector_CollectError(t *testing.T) {
	t.Parallel()

	mock := &mockDLQPurger{
		purgeFunc: func(context.Context, time.Duration) (int, error) {
			return 0, errors.New("channel closed")
		},
	}

	gc := NewGarbageCollector(mock, time.Hour, 24*time.Hour)
	if err := gc.collect(context.Background()); err == nil {
		t.Error("expected error from collect()")
	}
}

func TestGarbageCollector_NilPurger(t *testing.T) {
	t.Parallel()

	gc := NewGarbageCollector(nil, time.Hour, 24*time.Hour)
	if err := gc.collect(context.Background()); err != nil {
		t.Errorf("collect() with nil purger should be a no-op, got %v", err)
	}
}

func TestGarbageCollector_StartStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gc := NewGarbageCollector(&mockDLQPurger{}, time.Millisecond, time.Hour)
	if err := gc.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Start() = %v, want context.Canceled", err)
	}
}

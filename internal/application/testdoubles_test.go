package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"bitprice-service/internal/domain"
)

var ErrRepo = errors.New("repo error")

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fakeSource struct {
	price float64
	err   error
	gate  chan struct{}
	calls atomic.Int32
}

func (f *fakeSource) FetchPrice(ctx context.Context) (float64, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if f.err != nil {
		return 0, f.err
	}
	return f.price, nil
}

type fakeStore struct {
	mu        sync.Mutex
	rows      []domain.Quote
	appendErr error
	readErr   error
	reads     int
}

func (f *fakeStore) Append(_ context.Context, q domain.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.rows = append(f.rows, q)
	return nil
}

func (f *fakeStore) Recent(_ context.Context, limit int) ([]domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := append([]domain.Quote(nil), f.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ObservedAt.After(out[j].ObservedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

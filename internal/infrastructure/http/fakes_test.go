package httpserver

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"bitprice-service/internal/application"
	"bitprice-service/internal/domain"
)

var _ application.QuoteStore = (*fakeQuoteStore)(nil)
var _ application.PriceSource = (*fakePriceSource)(nil)

var errStoreDown = errors.New("store down")

type fakeQuoteStore struct {
	mu        sync.Mutex
	rows      []domain.Quote
	appendErr error
	readErr   error
	lastLimit int
}

func (f *fakeQuoteStore) Append(_ context.Context, q domain.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.rows = append(f.rows, q)
	return nil
}

func (f *fakeQuoteStore) Recent(_ context.Context, limit int) ([]domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make([]domain.Quote, 0, min(limit, len(f.rows)))
	out = append(out, f.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ObservedAt.After(out[j].ObservedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeQuoteStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakePriceSource struct {
	price float64
	err   error
	calls atomic.Int32
}

func (f *fakePriceSource) FetchPrice(context.Context) (float64, error) {
	f.calls.Add(1)
	if f.err != nil {
		return 0, f.err
	}
	return f.price, nil
}

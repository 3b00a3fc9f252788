package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"bitprice-service/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheTTL     = 120 * time.Second
	DefaultHistoryLimit = 10

	flightKey = "bitcoin-usd"
)

type cacheEntry struct {
	quote      domain.Quote
	insertedAt time.Time
}

// QuoteGateway serves the current price from a single cached quote and
// falls through to the price source once the entry is older than the TTL.
type QuoteGateway struct {
	source       PriceSource
	store        QuoteStore
	clock        Clock
	ttl          time.Duration
	fetchTimeout time.Duration
	log          *zap.Logger

	mu     sync.Mutex
	entry  *cacheEntry
	flight singleflight.Group
}

type Option func(*QuoteGateway)

func WithClock(c Clock) Option                { return func(g *QuoteGateway) { g.clock = c } }
func WithTTL(d time.Duration) Option          { return func(g *QuoteGateway) { g.ttl = d } }
func WithFetchTimeout(d time.Duration) Option { return func(g *QuoteGateway) { g.fetchTimeout = d } }
func WithLogger(l *zap.Logger) Option         { return func(g *QuoteGateway) { g.log = l } }

func NewQuoteGateway(source PriceSource, store QuoteStore, opts ...Option) *QuoteGateway {
	g := &QuoteGateway{
		source: source,
		store:  store,
		ttl:    DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.clock == nil {
		g.clock = realClock{}
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	return g
}

// GetCurrentQuote returns the cached quote while it is fresh, otherwise fetches,
// caches and persists a new one. Concurrent misses share a single fetch.
//
// A store failure after a successful fetch returns the new quote together with
// a *domain.PersistenceError.
func (g *QuoteGateway) GetCurrentQuote(ctx context.Context) (domain.Quote, error) {
	if q, ok := g.cached(); ok {
		g.log.Debug("quote_gateway.cache_hit")
		return q, nil
	}

	ch := g.flight.DoChan(flightKey, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		if g.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, g.fetchTimeout)
			defer cancel()
		}
		return g.refresh(fctx)
	})

	select {
	case <-ctx.Done():
		return domain.Quote{}, ctx.Err()
	case res := <-ch:
		q, _ := res.Val.(domain.Quote)
		return q, res.Err
	}
}

func (g *QuoteGateway) refresh(ctx context.Context) (domain.Quote, error) {
	// a flight that finished just before this one started may have filled the slot
	if q, ok := g.cached(); ok {
		return q, nil
	}

	price, err := g.source.FetchPrice(ctx)
	if err != nil {
		var ue *domain.UpstreamError
		if !errors.As(err, &ue) {
			ue = &domain.UpstreamError{Message: err.Error()}
		}
		g.log.Warn("quote_gateway.upstream_failed", zap.Int("status", ue.StatusCode), zap.Error(err))
		return domain.Quote{}, ue
	}

	now := g.clock.Now()
	q, err := domain.NewQuote(price, now)
	if err != nil {
		g.log.Warn("quote_gateway.invalid_price", zap.Float64("price", price))
		return domain.Quote{}, &domain.UpstreamError{Message: err.Error()}
	}

	g.mu.Lock()
	g.entry = &cacheEntry{quote: q, insertedAt: now}
	g.mu.Unlock()

	if err := g.store.Append(ctx, q); err != nil {
		g.log.Error("quote_gateway.persist_failed", zap.Float64("price", q.Price), zap.Error(err))
		return q, &domain.PersistenceError{Message: "append quote", Err: err}
	}
	g.log.Info("quote_gateway.fetched", zap.Float64("price", q.Price), zap.Int64("timestamp", q.Timestamp()))
	return q, nil
}

func (g *QuoteGateway) cached() (domain.Quote, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.entry == nil {
		return domain.Quote{}, false
	}
	if g.clock.Now().Sub(g.entry.insertedAt) >= g.ttl {
		g.entry = nil
		return domain.Quote{}, false
	}
	return g.entry.quote, true
}

// GetQuoteHistory returns up to limit stored quotes, newest first.
func (g *QuoteGateway) GetQuoteHistory(ctx context.Context, limit int) ([]domain.Quote, error) {
	if limit < 0 {
		return nil, domain.ErrInvalidLimit
	}
	if limit == 0 {
		return []domain.Quote{}, nil
	}
	quotes, err := g.store.Recent(ctx, limit)
	if err != nil {
		g.log.Error("quote_gateway.history_failed", zap.Int("limit", limit), zap.Error(err))
		return nil, &domain.PersistenceError{Message: "read history", Err: err}
	}
	if quotes == nil {
		quotes = []domain.Quote{}
	}
	if len(quotes) > limit {
		quotes = quotes[:limit]
	}
	return quotes, nil
}

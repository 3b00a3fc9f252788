package provider

import (
	"context"
	"time"

	"bitprice-service/internal/application"
)

// Delayed waits a fixed Delay before every call to P.
//
// It is a crude self-imposed throttle, not a rate limiter: calls are not
// spaced relative to each other and there is no token bucket or window.
type Delayed struct {
	P     application.PriceSource
	Delay time.Duration
}

var _ application.PriceSource = (*Delayed)(nil)

func (d *Delayed) FetchPrice(ctx context.Context) (float64, error) {
	if d.Delay > 0 {
		t := time.NewTimer(d.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-t.C:
		}
	}
	return d.P.FetchPrice(ctx)
}

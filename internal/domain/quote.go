package domain

import (
	"fmt"
	"math"
	"time"
)

// Quote is one observed Bitcoin/USD price.
type Quote struct {
	Price      float64
	ObservedAt time.Time
}

func NewQuote(price float64, at time.Time) (Quote, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return Quote{}, fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}
	return Quote{Price: price, ObservedAt: at.Truncate(time.Second)}, nil
}

// Timestamp is the Unix-seconds form used by the store and the history API.
func (q Quote) Timestamp() int64 { return q.ObservedAt.Unix() }

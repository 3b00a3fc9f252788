package application

import (
	"context"

	"bitprice-service/internal/domain"
)

// PriceSource fetches the live Bitcoin/USD price.
type PriceSource interface {
	FetchPrice(ctx context.Context) (float64, error)
}

// QuoteStore persists quotes. It only appends and reads newest-first.
type QuoteStore interface {
	Append(ctx context.Context, q domain.Quote) error
	Recent(ctx context.Context, limit int) ([]domain.Quote, error)
}

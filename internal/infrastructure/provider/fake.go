package provider

import (
	"context"

	"bitprice-service/internal/application"
)

// Ensure Fake implements application.PriceSource.
var _ application.PriceSource = (*Fake)(nil)

type Fake struct {
	price float64
}

func NewFake(price float64) *Fake { return &Fake{price: price} }

func (f *Fake) FetchPrice(context.Context) (float64, error) { return f.price, nil }

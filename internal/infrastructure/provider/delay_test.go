package provider_test

import (
	"context"
	"testing"
	"time"

	"bitprice-service/internal/infrastructure/provider"

	"github.com/stretchr/testify/require"
)

func TestDelayed_WaitsBeforeCall(t *testing.T) {
	d := &provider.Delayed{P: provider.NewFake(10), Delay: 30 * time.Millisecond}
	start := time.Now()
	price, err := d.FetchPrice(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10.0, price)
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestDelayed_CanceledDuringWait(t *testing.T) {
	d := &provider.Delayed{P: provider.NewFake(10), Delay: time.Minute}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := d.FetchPrice(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

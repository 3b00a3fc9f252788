package domain

import (
	"errors"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewQuote(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 750_000_000, time.UTC)
	q, err := NewQuote(65000.5, at)
	require.NoError(t, err)
	require.Equal(t, 65000.5, q.Price)
	require.Equal(t, at.Unix(), q.Timestamp())
	require.Zero(t, q.ObservedAt.Nanosecond())

	for _, p := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewQuote(p, at)
		require.ErrorIs(t, err, ErrInvalidPrice)
	}
}

func TestUpstreamError_HTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusServiceUnavailable, (&UpstreamError{StatusCode: 503}).HTTPStatus())
	require.Equal(t, http.StatusTooManyRequests, (&UpstreamError{StatusCode: 429}).HTTPStatus())
	require.Equal(t, http.StatusInternalServerError, (&UpstreamError{}).HTTPStatus())
	require.Equal(t, http.StatusInternalServerError, (&UpstreamError{StatusCode: 302}).HTTPStatus())
}

func TestPersistenceError_Unwrap(t *testing.T) {
	cause := errors.New("conn refused")
	err := error(&PersistenceError{Message: "append quote", Err: cause})
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "append quote")
}

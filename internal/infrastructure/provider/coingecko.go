package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"bitprice-service/internal/application"
	"bitprice-service/internal/domain"
)

//go:generate mockgen -package=provider_test -destination=mock_http_client_test.go -source=coingecko.go HTTPClient

const (
	coinGeckoSimplePricePath = "/api/v3/simple/price"
	coinGeckoAPIKeyHeader    = "x-cg-demo-api-key"
	coinID                   = "bitcoin"
	vsCurrency               = "usd"

	maxBodyBytes = 1 << 16
)

// HTTPClient is the subset of *http.Client the provider needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CoinGecko reads the Bitcoin/USD price from the CoinGecko simple-price endpoint.
type CoinGecko struct {
	BaseURL string
	APIKey  string
	Client  HTTPClient
}

var _ application.PriceSource = (*CoinGecko)(nil)

// simplePriceResp is keyed by coin id, then by quote currency.
type simplePriceResp map[string]map[string]float64

func (p *CoinGecko) FetchPrice(ctx context.Context) (float64, error) {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return 0, &domain.UpstreamError{Message: fmt.Sprintf("invalid base url: %v", err)}
	}
	u.Path = coinGeckoSimplePricePath
	q := u.Query()
	q.Set("ids", coinID)
	q.Set("vs_currencies", vsCurrency)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, &domain.UpstreamError{Message: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	if p.APIKey != "" {
		req.Header.Set(coinGeckoAPIKeyHeader, p.APIKey)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, &domain.UpstreamError{Message: fmt.Sprintf("do request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return 0, &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    "error fetching data from CoinGecko API",
		}
	}

	var body simplePriceResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return 0, &domain.UpstreamError{Message: fmt.Sprintf("decode response: %v", err)}
	}
	price, ok := body[coinID][vsCurrency]
	if !ok {
		return 0, &domain.UpstreamError{Message: fmt.Sprintf("missing %s.%s in response", coinID, vsCurrency)}
	}
	if price <= 0 {
		return 0, &domain.UpstreamError{Message: fmt.Sprintf("non-positive price %v", price)}
	}
	return price, nil
}

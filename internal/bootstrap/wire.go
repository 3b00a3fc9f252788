//go:build wireinject

package bootstrap

import (
	"context"

	"github.com/google/wire"
)

var apiSet = wire.NewSet(
	ProvideLogger,
	ProvideConfig,
	ProvideStore,
	ProvidePriceSource,
	ProvideQuoteGateway,
	ProvideCallBudget,
	ProvideServer,
	ProvideHTTPServer,
	ProvideApp,
)

// InitAPI builds the API app and a cleanup for its store.
func InitAPI(ctx context.Context) (*App, func(), error) {
	wire.Build(apiSet)
	return nil, nil, nil
}

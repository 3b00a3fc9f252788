package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bitprice-service/internal/application"
	"bitprice-service/internal/config"
	infraconfig "bitprice-service/internal/infrastructure/config"
	httpserver "bitprice-service/internal/infrastructure/http"
	"bitprice-service/internal/infrastructure/httpx"
	"bitprice-service/internal/infrastructure/logx"
	"bitprice-service/internal/infrastructure/pg"
	"bitprice-service/internal/infrastructure/provider"
	redisstore "bitprice-service/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required for STORE=pg")

const fakePrice = 65000.5

// Store is the quote store plus its readiness probe.
type Store struct {
	Quotes application.QuoteStore
	Ping   func(ctx context.Context) error
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() (config.Config, error) { return config.FromEnvAndFile() }

// ProvideStore builds the quote store selected by STORE ("pg" or "redis").
func ProvideStore(ctx context.Context, log *zap.Logger, cfg config.Config) (Store, func(), error) {
	switch cfg.Store {
	case "pg", "":
		if cfg.DatabaseURL == "" {
			return Store{}, func() {}, ErrMissingDBURL
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return Store{}, func() {}, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return Store{}, func() {}, err
		}
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		qs := pg.NewQuoteStore(db)
		return Store{Quotes: qs, Ping: qs.Ping}, cleanup, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cleanup := func() {
			log.Info("closing redis")
			_ = client.Close()
		}
		qs := redisstore.New(client, cfg.RedisKey)
		return Store{Quotes: qs, Ping: qs.Ping}, cleanup, nil
	default:
		return Store{}, func() {}, fmt.Errorf("unsupported STORE=%q", cfg.Store)
	}
}

// ProvidePriceSource returns the upstream source wrapped in the fixed pre-call delay.
func ProvidePriceSource(cfg config.Config) application.PriceSource {
	var src application.PriceSource
	switch cfg.Provider {
	case "fake":
		src = provider.NewFake(fakePrice)
	default:
		timeout := cfg.UpstreamTimeout
		if timeout <= 0 {
			timeout = infraconfig.DefaultUpstreamTimeout
		}
		client := httpx.New(timeout)
		client.Headers = map[string]string{"Accept": "application/json"}
		src = &provider.CoinGecko{
			BaseURL: cfg.CoinGeckoBase,
			APIKey:  cfg.CoinGeckoAPIKey,
			Client:  client,
		}
	}
	return &provider.Delayed{P: src, Delay: cfg.FetchDelay}
}

func ProvideQuoteGateway(src application.PriceSource, st Store, cfg config.Config, log *zap.Logger) *application.QuoteGateway {
	opts := []application.Option{
		application.WithLogger(log),
		application.WithFetchTimeout(cfg.FetchDelay + cfg.UpstreamTimeout + infraconfig.DefaultPersistTimeout),
	}
	if cfg.CacheTTL > 0 {
		opts = append(opts, application.WithTTL(cfg.CacheTTL))
	}
	return application.NewQuoteGateway(src, st.Quotes, opts...)
}

func ProvideCallBudget(cfg config.Config) *application.CallBudget {
	return application.NewCallBudget(cfg.CallBudget)
}

func ProvideServer(gw *application.QuoteGateway, budget *application.CallBudget, st Store) *httpserver.Server {
	srv := httpserver.NewServer(gw, budget)
	srv.SetReadyCheck(st.Ping)
	return srv
}

func ProvideHTTPServer(srv *httpserver.Server, budget *application.CallBudget, cfg config.Config, log *zap.Logger) *http.Server {
	port := cfg.Port
	if port == "" {
		port = infraconfig.DefaultHTTPPort
	}
	hs := &http.Server{
		Addr:              ":" + port,
		Handler:           httpserver.NewRouter(srv, cfg.CORSOrigins),
		ReadHeaderTimeout: infraconfig.DefaultReadHeaderTimeout,
	}
	// the counter is never persisted; record where it ended
	hs.RegisterOnShutdown(func() {
		log.Info("call_budget.final", zap.Int64("used", budget.Used()), zap.Int64("ceiling", budget.Ceiling()))
	})
	return hs
}

// App is what cmd/api runs: the HTTP server plus the settings main needs
// once the server is up.
type App struct {
	Server          *http.Server
	ShutdownTimeout time.Duration
}

func ProvideApp(hs *http.Server, cfg config.Config) *App {
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = infraconfig.DefaultShutdownTimeout
	}
	return &App{Server: hs, ShutdownTimeout: timeout}
}

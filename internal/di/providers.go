package di

import (
	"fmt"
	"net"
	"strconv"

	"FlipPulse/internal/domain/models"
	"FlipPulse/internal/domain/repository"
	"FlipPulse/internal/handler/api"
	"FlipPulse/internal/services/wiki"
	"FlipPulse/internal/usecase"
	"FlipPulse/pkg/cache"
	"FlipPulse/pkg/config"
	xlogger "FlipPulse/pkg/logger"
	"FlipPulse/pkg/metrics"
	"FlipPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the cache layer. Returns nil when caching is disabled;
// the wiki client treats a nil cache as a pass-through.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	if cfg.Cache.Redis.Enabled {
		host, portStr, err := net.SplitHostPort(cfg.Cache.Redis.Addr)
		if err != nil {
			return nil, fmt.Errorf("cache.redis.addr: %w", err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("cache.redis.addr port: %w", err)
		}

		redisCache, err := cache.NewRedisCache(
			cache.WithRedisHost(host),
			cache.WithRedisPort(port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewLayeredCache(redisCache), nil
	}

	return cache.NewMemoryCache(), nil
}

// ProvideParams maps config to evaluation parameters.
func ProvideParams(cfg *config.Config) models.Params {
	return models.Params{
		Bank:           cfg.Flip.Bank,
		Slots:          cfg.Flip.Slots,
		MinVolume24h:   cfg.Flip.MinVolume24h,
		Aggressiveness: cfg.Flip.Aggressiveness,
		MinProfitUnit:  cfg.Flip.MinProfitUnit,
		TaxModel:       cfg.Flip.TaxModel,
		RuneCost:       cfg.Flip.RuneCost,
		RequireHAFloor: cfg.Flip.RequireHAFloor,
		MaxAge:         cfg.Flip.MaxAge,
		MaxDeviation:   cfg.Flip.MaxDeviation,
	}
}

// ProvideMarketSource creates the wiki price API client.
func ProvideMarketSource(cfg *config.Config, c cache.Service, m repository.Metrics) repository.MarketSource {
	return wiki.New(
		cfg.Wiki.BaseURL,
		cfg.Wiki.UserAgent,
		cfg.Wiki.Timeout,
		c,
		wiki.TTL{
			Mapping: cfg.Cache.TTL.Mapping,
			Prices:  cfg.Cache.TTL.Prices,
			Volumes: cfg.Cache.TTL.Volumes,
		},
		m,
	)
}

// ProvideRefresher creates the background refresh use case.
func ProvideRefresher(
	source repository.MarketSource,
	m repository.Metrics,
	params models.Params,
	cfg *config.Config,
	l *xlogger.Logger,
) *usecase.Refresher {
	return usecase.NewRefresher(source, m, params, cfg.Refresh.Interval, l)
}

// ProvideFlipsHandler creates the Echo API handler.
func ProvideFlipsHandler(l *xlogger.Logger, ref *usecase.Refresher) *api.FlipsHandler {
	return api.NewFlipsHandler(l, ref)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *xlogger.Logger,
	ref *usecase.Refresher,
	h *api.FlipsHandler,
	c cache.Service,
) *server.App {
	return server.New(cfg, l, ref, h, c)
}

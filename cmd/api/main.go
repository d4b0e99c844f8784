package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bebektakip/carefinder/internal/adapters/cache"
	"github.com/bebektakip/carefinder/internal/adapters/events"
	"github.com/bebektakip/carefinder/internal/api/handlers"
	"github.com/bebektakip/carefinder/internal/api/routes"
	"github.com/bebektakip/carefinder/internal/application/services"
	"github.com/bebektakip/carefinder/internal/domain/providers"
	"github.com/bebektakip/carefinder/internal/infrastructure/clients/places"
	redisclient "github.com/bebektakip/carefinder/internal/infrastructure/clients/redis"
	"github.com/bebektakip/carefinder/internal/infrastructure/observability"
	"github.com/bebektakip/carefinder/internal/normalize"
	"github.com/bebektakip/carefinder/pkg/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)
	logger := observability.GetLogger()

	var metrics *observability.Metrics
	if cfg.OTEL.Enabled {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize OpenTelemetry")
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn().Err(err).Msg("failed to shut down OpenTelemetry")
			}
		}()

		metrics, err = observability.InitMetrics()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize metrics")
		}
	}

	// Redis is optional; without it the result cache falls back to memory and
	// search events are not published.
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	redisCli, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
		cacheProvider = cache.NewMemoryAdapter(nil)
	} else {
		defer redisCli.Close()
		cacheProvider = cache.NewRedisAdapter(redisCli)
		eventBus = events.NewRedisEventBus(redisCli)
	}

	resultCache := cache.NewResultCacheWithTTL(
		cacheProvider,
		clockwork.NewRealClock(),
		time.Duration(cfg.Places.CacheTTLSecs)*time.Second,
	)

	var searcher providers.PlaceSearcher
	switch cfg.Places.Provider {
	case "google":
		httpClient := &http.Client{Timeout: time.Duration(cfg.Places.RequestTimeout) * time.Second}
		searcher = places.NewClientWithOptions(cfg.Places.APIKey, cfg.Places.BaseURL, httpClient)
	default:
		logger.Info().Msg("using mock places provider")
		searcher = places.NewMockSearcher()
	}

	keywords := normalize.DefaultKeywords()
	if cfg.Places.KeywordsPath != "" {
		keywords, err = normalize.LoadKeywords(cfg.Places.KeywordsPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.Places.KeywordsPath).Msg("failed to load keywords file")
		}
	}
	normalizer := normalize.New(keywords)

	searchService := services.NewSearchService(searcher, resultCache, normalizer, services.NewRankingService())
	searchService.SetMetrics(metrics)
	if eventBus != nil {
		searchService.SetEventBus(eventBus)
	}

	providerHandler := handlers.NewProviderHandler(searchService)
	router := routes.NewRouter(providerHandler, metrics)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Str("provider", cfg.Places.Provider).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server stopped")
}

// ABOUTME: Main entry point for the PostSheet API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postsheet-api/api"
	"postsheet-api/api/handlers"
	"postsheet-api/api/middleware"
	coreconfig "postsheet-api/core/config"
	"postsheet-api/core/enrichment"
	"postsheet-api/core/interfaces"
	"postsheet-api/core/quota"
	"postsheet-api/core/records"
	"postsheet-api/core/save"
	"postsheet-api/core/settings"
	"postsheet-api/core/sheets"
	"postsheet-api/core/workers"
	"postsheet-api/infrastructure/cache/memory"
	"postsheet-api/infrastructure/cache/redis"
	"postsheet-api/infrastructure/cache/sqlite"
	stdhttp "postsheet-api/infrastructure/http/standard"
	"postsheet-api/infrastructure/identity/google"
	logruslogger "postsheet-api/infrastructure/logger/logrus"
	"postsheet-api/infrastructure/notify/ntfy"
	"postsheet-api/pkg/config"
	"postsheet-api/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger, err := logruslogger.New(logruslogger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	logger.Info("Starting PostSheet API", map[string]interface{}{
		"port":        cfg.Server.Port,
		"environment": cfg.Server.Environment,
		"cache_type":  cfg.Cache.Type,
	})

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	// Create HTTP client; outbound calls are logged without query strings
	httpClient := stdhttp.NewStandardHTTPClient(30 * time.Second)
	httpClient.HTTPClient().Transport = &middleware.LoggingRoundTripper{
		Transport: http.DefaultTransport,
		Logger:    logger,
	}

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	flags := featureflags.NewEnvManager("FEATURE_")
	active := make(map[string]interface{})
	for flag, on := range flags.GetAllFlags() {
		active[string(flag)] = on
	}
	logger.Info("Feature flags", active)

	// Create services
	settingsService := settings.NewService(cache, cfg.Sheets.DefaultSheetID)
	ledger := quota.NewLedger(cache)
	recordStore := records.NewStore(cache)
	enricher := enrichment.NewClient(deps, ledger, settingsService, enrichmentConfig(cfg))

	var tokens interfaces.TokenProvider
	if cfg.HasGoogleCredentials() {
		provider, err := google.NewTokenProvider(google.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RefreshToken: cfg.Google.RefreshToken,
			TokenURL:     cfg.Google.TokenURL,
			HTTPClient:   httpClient.HTTPClient(),
		}, cache, logger)
		if err != nil {
			log.Fatalf("Failed to create token provider: %v", err)
		}
		tokens = provider
	} else {
		logger.Warn("Google credentials not configured, saves will fail with unauthorized", nil)
	}

	sheetsClient := sheets.NewClient(sheets.Config{
		Range:      cfg.Sheets.Range,
		Endpoint:   cfg.Sheets.Endpoint,
		HTTPClient: httpClient.HTTPClient(),
	}, tokens, logger)

	var notifier interfaces.Notifier = ntfy.Noop{}
	if cfg.Notify.TopicURL != "" {
		notifier = ntfy.New(cfg.Notify.TopicURL, httpClient)
	}
	worker := workers.NewNotificationWorker(notifier, logger, workers.WorkerConfig{
		MaxWorkers:  cfg.Notify.Workers,
		QueueSize:   cfg.Notify.QueueSize,
		SendTimeout: time.Duration(cfg.Notify.TimeoutSeconds) * time.Second,
	})
	if err := worker.Start(); err != nil {
		log.Fatalf("Failed to start notification worker: %v", err)
	}

	orchestrator := save.New(save.Config{
		Records:       recordStore,
		Sheets:        sheetsClient,
		Enricher:      enricher,
		Settings:      settingsService,
		Notifications: worker,
		Logger:        logger,
	})

	// Create API with middleware
	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:             logger,
		Flags:              flags,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		RateLimitBurst:     cfg.Server.RateLimitBurst,
	})

	// Create and register handlers
	handlers.NewCaptureHandler(orchestrator, logger).RegisterRoutes(humaAPI)
	handlers.NewRecordHandler(recordStore).RegisterRoutes(humaAPI)
	handlers.NewSettingsHandler(settingsService).RegisterRoutes(humaAPI)
	handlers.NewQuotaHandler(enricher).RegisterRoutes(humaAPI)

	errorLog := logger.Writer("error")
	defer errorLog.Close()

	// Create HTTP server; the write timeout covers the AI call plus the sheet write
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     log.New(errorLog, "", 0),
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := worker.Stop(); err != nil {
		logger.Warn("Notification worker stop failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// newCache selects the configured store, falling back to memory when redis is unreachable
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	memoryCache := func() interfaces.Cache {
		return memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.CleanupInterval) * time.Second)
	}

	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memoryCache(), func() {}
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache, func() { _ = redisCache.Close() }
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCacheWithLogger(cfg.Cache.SQLite.Path, logger)
		if err != nil {
			log.Fatalf("Failed to open SQLite store: %v", err)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLite.Path,
		})
		return sqliteCache, func() { _ = sqliteCache.Close() }
	default:
		logger.Info("Using memory cache", nil)
		return memoryCache(), func() {}
	}
}

func enrichmentConfig(cfg *config.Config) coreconfig.EnrichmentConfig {
	quotas := coreconfig.DefaultQuotaTable()
	tier := cfg.Server.Environment
	licensed := quotas.Limit(tier, true)
	anon := quotas.Limit(tier, false)
	if cfg.AI.LicensedLimit != config.Unset {
		licensed = cfg.AI.LicensedLimit
	}
	if cfg.AI.AnonymousLimit != config.Unset {
		anon = cfg.AI.AnonymousLimit
	}
	quotas[tier] = coreconfig.TierLimits{Licensed: licensed, Anonymous: anon}

	return coreconfig.NewEnrichmentConfig(
		coreconfig.WithEndpoint(cfg.AI.Endpoint),
		coreconfig.WithTimeout(time.Duration(cfg.AI.TimeoutSeconds)*time.Second),
		coreconfig.WithTier(tier),
		coreconfig.WithQuotas(quotas),
	)
}

func init() {
	// Print banner
	fmt.Println(`
    ____             __  _____ __              __
   / __ \____  _____/ /_/ ___// /_  ___  ___  / /_
  / /_/ / __ \/ ___/ __/\__ \/ __ \/ _ \/ _ \/ __/
 / ____/ /_/ (__  ) /_ ___/ / / / /  __/  __/ /_
/_/    \____/____/\__//____/_/ /_/\___/\___/\__/
	`)
}

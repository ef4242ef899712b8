// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as storage, HTTP communication, credentials and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory store using go-cache
// - cache/redis: Redis-backed store shared between instances
// - cache/sqlite: Durable single-file store
// - http/standard: Standard library HTTP client with a shared timeout
// - identity/google: OAuth refresh-token provider for the Sheets API
// - logger/logrus: Structured logger with optional file rotation
// - notify/ntfy: Push notifications through an ntfy topic
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache(10 * time.Minute)
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// A zero TTL keeps the entry until it is deleted.
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:   "localhost:6379",
//	    KeyPrefix: "postsheet:",
//	})
//
// # HTTP Client
//
// Requests are single-shot; callers decide whether a failure is retryable:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Do(ctx, http.MethodPost, endpoint, body, map[string]string{
//	    "Content-Type": "application/json",
//	})
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger, err := logrus.New(logrus.Options{Level: "info", Format: "json"})
//	logger.Info("Saved capture", map[string]interface{}{
//	    "url_hash": hash,
//	})
package infrastructure

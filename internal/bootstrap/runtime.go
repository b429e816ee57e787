// Package bootstrap establishes the runtime dependencies shared by the
// server and the CLI tools.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"feedflow/internal/cache"
	"feedflow/internal/config"
	"feedflow/internal/database"
	"feedflow/internal/observability"
	"feedflow/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// InitRuntime connects to the database, runs migrations, initializes Redis
// and tracing, and optionally seeds demo data into an empty database.
// The returned shutdown function flushes the tracer provider.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, func(context.Context) error, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis is optional; a nil client disables caching and rate limiting.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "feedflow-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExport,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingRatio,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tracing initialization failed: %w", err)
	}

	if opts.SeedDemoData {
		if err := seedIfEmpty(db); err != nil {
			return nil, nil, nil, fmt.Errorf("demo data seeding failed: %w", err)
		}
	}

	return db, r, shutdownTracing, nil
}

// seedIfEmpty seeds demo data only when the users table is empty, so a
// restart against a persistent database does not duplicate the dataset.
func seedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Table("users").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("database already has users, skipping demo seed")
		return nil
	}
	return seed.Seed(db, seed.DefaultOptions())
}

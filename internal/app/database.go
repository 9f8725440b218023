package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/bundle-service/config"
	"github.com/guttosm/bundle-service/internal/circuitbreaker"
	"github.com/guttosm/bundle-service/internal/repository"
	"github.com/guttosm/bundle-service/internal/service"
)

// DatabaseComponents holds the storage layer.
// DB and the breakers are nil when bundles are kept in memory.
type DatabaseComponents struct {
	DB                    *repository.MongoDB
	BundleRepo            repository.BundleRepositoryInterface
	LoggingService        service.LoggingService
	BundlesCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker    *circuitbreaker.CircuitBreaker
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close() {
	if d == nil || d.DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.DB.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}

// InitializeDatabase connects to MongoDB and wraps the repositories in circuit
// breakers. When the database is disabled or unreachable bundles are kept in
// memory and request logs are not persisted.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		log.Warn().Msg("MongoDB disabled - bundles are kept in memory")
		return inMemoryComponents()
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - bundles are kept in memory")
		return inMemoryComponents()
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if ttlDays > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.SetLogsTTL(ctx, ttlDays); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index")
		}
		cancel()
	}

	bundlesCB := newStorageBreaker(cfg, "mongodb-bundles")
	logsCB := newStorageBreaker(cfg, "mongodb-logs")

	bundleRepo := repository.NewBundleRepositoryWithCircuitBreaker(repository.NewBundleRepository(db), bundlesCB)
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                    db,
		BundleRepo:            bundleRepo,
		LoggingService:        service.NewLoggingService(logsRepo),
		BundlesCircuitBreaker: bundlesCB,
		LogsCircuitBreaker:    logsCB,
	}
}

// newStorageBreaker only counts storage failures, so not-found and duplicate
// slug results never open the circuit.
func newStorageBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        repository.IsStorageFailure,
	})
}

func inMemoryComponents() *DatabaseComponents {
	return &DatabaseComponents{BundleRepo: repository.NewMemoryBundleRepository()}
}

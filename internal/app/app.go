// Package app wires configuration, storage, use cases, and the HTTP
// surface into a runnable server.
package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/panjf2000/ants/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	_ "github.com/lib/pq"

	"github.com/lineshift/lineshift/external/espn"
	"github.com/lineshift/lineshift/external/mlbapi"
	"github.com/lineshift/lineshift/internal/config"
	"github.com/lineshift/lineshift/internal/infrastructure/repository/postgres"
	"github.com/lineshift/lineshift/internal/interfaces/httpapi"
	"github.com/lineshift/lineshift/internal/platform/cache"
	"github.com/lineshift/lineshift/internal/platform/logging"
	"github.com/lineshift/lineshift/internal/platform/resilience"
	"github.com/lineshift/lineshift/internal/usecase"
)

// Server owns the HTTP listener plus the resources that must be released
// when the process stops.
type Server struct {
	HTTP *http.Server

	db   *sqlx.DB
	pool *ants.Pool
}

// Close releases the worker pool and database handle. Call it after the
// HTTP server has shut down.
func (s *Server) Close() error {
	if s.pool != nil {
		s.pool.Release()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func NewServer(cfg config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	gameRepo := postgres.NewGameRepository(db)
	oddsRepo := postgres.NewOddsRepository(db)
	ingestionRepo := postgres.NewIngestionRepository(db)
	playerStatsRepo := postgres.NewPlayerStatsRepository(db)

	cacheStore := cache.NewStore(cfg.CacheTTL)

	ingestionSvc := usecase.NewIngestionService(ingestionRepo, gameRepo, cacheStore, logger)
	movementSvc := usecase.NewMovementService(gameRepo, oddsRepo, cfg.MovementMaxScanners)
	dashboardSvc := usecase.NewDashboardService(gameRepo, oddsRepo, cacheStore)
	playerStatsSvc := usecase.NewPlayerStatsService(playerStatsRepo)

	workerPool, err := ants.NewPool(cfg.RefreshWorkers)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create refresh worker pool: %w", err)
	}

	refreshSvc := usecase.NewRefreshService(ingestionSvc, buildSources(cfg, logger), workerPool, logger)

	handler := httpapi.NewHandler(ingestionSvc, movementSvc, dashboardSvc, playerStatsSvc, refreshSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if httpServer.Addr == "" {
		workerPool.Release()
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &Server{HTTP: httpServer, db: db, pool: workerPool}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinaryResult)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dsn)),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// buildSources assembles the enabled upstream feeds. A deployment with no
// sources enabled still serves reads and accepts pushed batches.
func buildSources(cfg config.Config, logger *logging.Logger) []usecase.Source {
	var sources []usecase.Source

	if cfg.ESPNEnabled {
		sources = append(sources, espn.NewClient(espn.ClientConfig{
			BaseURL:    cfg.ESPNBaseURL,
			Timeout:    cfg.ESPNTimeout,
			MaxRetries: cfg.ESPNMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ESPNCircuitEnabled,
				FailureThreshold: cfg.ESPNCircuitFailureCount,
				OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenReq,
			},
		}))
	}

	if cfg.MLBAPIEnabled {
		sources = append(sources, mlbapi.NewClient(mlbapi.ClientConfig{
			BaseURL:    cfg.MLBAPIBaseURL,
			Timeout:    cfg.MLBAPITimeout,
			MaxRetries: cfg.MLBAPIMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.MLBAPICircuitEnabled,
				FailureThreshold: cfg.MLBAPICircuitFailureCount,
				OpenTimeout:      cfg.MLBAPICircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.MLBAPICircuitHalfOpenReq,
			},
		}))
	}

	return sources
}

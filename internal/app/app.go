package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/boxpool/boxpool/external/scoreapi"
	"github.com/boxpool/boxpool/internal/config"
	"github.com/boxpool/boxpool/internal/domain/grid"
	"github.com/boxpool/boxpool/internal/domain/team"
	"github.com/boxpool/boxpool/internal/infrastructure/repository/memory"
	"github.com/boxpool/boxpool/internal/infrastructure/repository/postgres"
	"github.com/boxpool/boxpool/internal/interfaces/httpapi"
	idgen "github.com/boxpool/boxpool/internal/platform/id"
	"github.com/boxpool/boxpool/internal/platform/logging"
	"github.com/boxpool/boxpool/internal/platform/resilience"
	"github.com/boxpool/boxpool/internal/usecase"
)

// App bundles the HTTP server with the services the process wires around it.
// RefreshService is exposed so the background poller can reuse the exact
// pipeline the internal refresh job runs.
type App struct {
	Server         *http.Server
	RefreshService *usecase.RefreshService

	closers []func(context.Context) error
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		teamRepo team.Repository
		gridRepo grid.Repository
		closers  []func(context.Context) error
	)

	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return nil, err
		}
		closers = append(closers, func(context.Context) error { return db.Close() })
		if err := postgres.BootstrapSeed(context.Background(), db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed reference teams: %w", err)
		}
		teamRepo = postgres.NewTeamRepository(db)
		gridRepo = postgres.NewGridRepository(db)
		logger.Info("storage ready", "driver", cfg.StorageDriver, "database", dbNameFromURL(cfg.DBURL))
	default:
		teamRepo = memory.NewTeamRepository(memory.SeedTeams())
		gridRepo = memory.NewGridRepository()
		logger.Info("storage ready", "driver", config.StorageDriverMemory)
	}

	var provider usecase.ScoreProvider
	if cfg.ScoreFeedEnabled {
		provider = scoreapi.NewClient(scoreapi.ClientConfig{
			BaseURL:    cfg.ScoreFeedBaseURL,
			Token:      cfg.ScoreFeedToken,
			Timeout:    cfg.ScoreFeedTimeout,
			MaxRetries: cfg.ScoreFeedMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ScoreFeedCircuitEnabled,
				FailureThreshold: cfg.ScoreFeedCircuitFailureCount,
				OpenTimeout:      cfg.ScoreFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ScoreFeedCircuitHalfOpenMaxReq,
			},
		})
	}

	// Snapshot reuse window. With caching off, fall back to the poll
	// interval so a burst of refreshes still costs one upstream request.
	snapshotTTL := cfg.ScorePollInterval
	if cfg.CacheEnabled {
		snapshotTTL = cfg.CacheTTL
	}

	teamSvc := usecase.NewTeamService(teamRepo)
	gridSvc := usecase.NewGridService(gridRepo, teamRepo, idgen.NewRandomGenerator())
	scoreSvc := usecase.NewScoreService(gridRepo, provider, snapshotTTL)
	scanSvc := usecase.NewScanService(gridRepo, teamRepo)
	insightSvc := usecase.NewInsightService(gridRepo)
	refreshSvc := usecase.NewRefreshService(gridRepo, scoreSvc)

	handler := httpapi.NewHandler(teamSvc, gridSvc, scoreSvc, scanSvc, insightSvc, refreshSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:         server,
		RefreshService: refreshSvc,
		closers:        closers,
	}, nil
}

// Close releases resources opened by New, last first.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

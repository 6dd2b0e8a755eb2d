package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"

	"dive-marine/internal/config"
	"dive-marine/internal/divepoint"
	"dive-marine/internal/observability"
	"dive-marine/internal/providers/khoa"
	"dive-marine/internal/providers/kma"
	"dive-marine/internal/providers/nifs"
	"dive-marine/internal/station"
	"dive-marine/internal/summary"
)

// App holds the router and the wired services.
type App struct {
	router *gin.Engine
	logger *slog.Logger
	cfg    *config.Config

	db             *sql.DB
	summaryService summary.Service
}

func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())

	db, err := sql.Open("sqlite3", cfg.Store.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open station store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach station store: %w", err)
	}

	registry := station.NewSQLiteRegistry(db)
	points := divepoint.NewSQLiteLookup(db)

	tideClient := khoa.NewClient(cfg.Providers.KHOA.BaseURL, cfg.Providers.KHOA.ServiceKey, cfg.Providers.KHOA.Timeout, logger)
	waveClient := kma.NewClient(cfg.Providers.KMA.BaseURL, cfg.Providers.KMA.ServiceKey, cfg.Providers.KMA.Timeout, logger)
	waterClient := nifs.NewClient(cfg.Providers.NIFS.BaseURL, cfg.Providers.NIFS.ServiceKey, cfg.Providers.NIFS.Timeout, logger)

	metrics := observability.NewMetrics()

	bounds := summary.FallbackBounds{
		WaveExtraAttempts:  cfg.Fallback.WaveExtraAttempts,
		WaterExtraAttempts: cfg.Fallback.WaterExtraAttempts,
	}

	summaryService := summary.NewService(
		registry,
		points,
		tideClient,
		waveClient,
		waterClient,
		bounds,
		metrics,
		clockwork.NewRealClock(),
		logger,
	)

	app := &App{
		router:         router,
		logger:         logger,
		cfg:            cfg,
		db:             db,
		summaryService: summaryService,
	}

	app.registerRoutes()

	return app, nil
}

func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}

func (app *App) Close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn("failed to close station store", "error", err)
		}
	}
}

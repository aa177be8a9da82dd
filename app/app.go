// Package app wires the scoring engine together: database, event bus,
// watermill command router, the tournament/roster/presence/broadcast modules
// and the HTTP surface.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/showdown-live/scorebot/app/api"
	"github.com/showdown-live/scorebot/app/modules/broadcast"
	"github.com/showdown-live/scorebot/app/modules/presence"
	rosterservice "github.com/showdown-live/scorebot/app/modules/roster/application"
	rosterdb "github.com/showdown-live/scorebot/app/modules/roster/infrastructure/repositories"
	"github.com/showdown-live/scorebot/app/modules/tournament"
	tournamentdb "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/repositories"
	"github.com/showdown-live/scorebot/app/shared/eventbus"
	"github.com/showdown-live/scorebot/app/shared/observability"
	"github.com/showdown-live/scorebot/config"
)

// App is the composed application.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router

	TournamentModule  *tournament.Module
	RosterService     rosterservice.Service
	PresenceTracker   *presence.Tracker
	presenceListener  *presence.Listener
	BroadcastHub      *broadcast.Hub
	broadcastListener *broadcast.Listener

	httpServer    *http.Server
	metricsServer *http.Server
}

// NewApp initializes every component. Nothing runs until Run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New("scorebot", cfg.Observability.Environment)
	logger := obs.Logger

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}
	if err := eventbus.InitializeStreams(ctx, bus, logger); err != nil {
		return nil, fmt.Errorf("failed to initialize streams: %w", err)
	}

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}

	tournamentRepo := &tournamentdb.TournamentDBImpl{DB: db}
	rosterRepo := &rosterdb.RosterDBImpl{DB: db}
	rosterSvc := rosterservice.NewRosterService(rosterRepo, bus, logger)

	tournamentModule, err := tournament.NewTournamentModule(
		ctx, obs, tournamentRepo, rosterSvc, bus, router, cfg.Postgres.DSN, ctx,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tournament module: %w", err)
	}

	tracker := presence.NewTracker(cfg.Presence.TTL)
	presenceListener := presence.NewListener(tracker, bus, logger)

	hub := broadcast.NewHub()
	broadcastListener := broadcast.NewListener(bus, tournamentModule.TournamentService, hub, logger)

	server := api.NewServer(
		tournamentModule.TournamentService,
		rosterSvc,
		tracker,
		tournamentModule.QueueService,
		hub,
		bus,
		logger,
		cfg.HTTP.RatePerSecond,
		cfg.HTTP.RateBurst,
	)

	app := &App{
		Config:            cfg,
		Observability:     obs,
		DB:                db,
		EventBus:          bus,
		Router:            router,
		TournamentModule:  tournamentModule,
		RosterService:     rosterSvc,
		PresenceTracker:   tracker,
		presenceListener:  presenceListener,
		BroadcastHub:      hub,
		broadcastListener: broadcastListener,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           server.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	if addr := cfg.Observability.MetricsAddress; addr != "" {
		if handler := observability.MetricsHandler(obs.Metrics); handler != nil {
			mux := http.NewServeMux()
			mux.Handle("/metrics", handler)
			app.metricsServer = &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}
		}
	}

	return app, nil
}

// Run starts every component and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.Router.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Watermill router stopped", "error", err)
		}
	}()

	wg.Add(1)
	go a.TournamentModule.Run(ctx, &wg)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.presenceListener.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Presence listener stopped", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.broadcastListener.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Broadcast listener stopped", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("HTTP API listening", "address", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", "error", err)
		}
	}()

	if a.metricsServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Metrics listening", "address", a.metricsServer.Addr)
			if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics shutdown error", "error", err)
		}
	}

	wg.Wait()
	return nil
}

// Close releases resources after Run returns.
func (a *App) Close() {
	logger := a.Observability.Logger

	if err := a.TournamentModule.Close(); err != nil {
		logger.Error("Error closing tournament module", "error", err)
	}
	if err := a.EventBus.Close(); err != nil {
		logger.Error("Error closing event bus", "error", err)
	}
	if err := a.DB.Close(); err != nil {
		logger.Error("Error closing database", "error", err)
	}
}

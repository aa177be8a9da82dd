// Package testutils provides the shared environment for integration tests:
// Postgres and NATS testcontainers, migrated schemas, and fully wired
// services.
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	natscontainer "github.com/testcontainers/testcontainers-go/modules/nats"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"go.opentelemetry.io/otel/trace/noop"

	_ "github.com/jackc/pgx/v5/stdlib"

	rosterservice "github.com/showdown-live/scorebot/app/modules/roster/application"
	rosterdb "github.com/showdown-live/scorebot/app/modules/roster/infrastructure/repositories"
	rostermigrations "github.com/showdown-live/scorebot/app/modules/roster/infrastructure/repositories/migrations"
	tournamentservice "github.com/showdown-live/scorebot/app/modules/tournament/application"
	tournamentdb "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/repositories"
	tournamentmigrations "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/repositories/migrations"
	"github.com/showdown-live/scorebot/app/shared/eventbus"
	"github.com/showdown-live/scorebot/app/shared/observability"
	"github.com/showdown-live/scorebot/integration_tests/containers"
)

// TestEnvironment holds every resource an integration test needs.
type TestEnvironment struct {
	Ctx    context.Context
	Cancel context.CancelFunc

	PgContainer   *pgcontainer.PostgresContainer
	NatsContainer *natscontainer.NATSContainer

	DB          *bun.DB
	PostgresDSN string
	NatsURL     string

	EventBus       eventbus.EventBus
	TournamentRepo tournamentdb.Repository
	RosterRepo     rosterdb.Repository

	TournamentService tournamentservice.Service
	RosterService     rosterservice.Service
}

// NewTestEnvironment starts the containers, migrates the schema and wires the
// services. Cleanup is registered on t.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)

	pg, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		t.Fatalf("postgres container: %v", err)
	}
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	nc, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		cancel()
		t.Fatalf("nats container: %v", err)
	}
	t.Cleanup(func() { _ = nc.Terminate(context.Background()) })

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })

	if err := runMigrations(ctx, db); err != nil {
		cancel()
		t.Fatalf("migrations: %v", err)
	}

	logger := observability.NoOpLogger
	bus, err := eventbus.NewEventBus(ctx, natsURL, logger)
	if err != nil {
		cancel()
		t.Fatalf("event bus: %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })

	if err := eventbus.InitializeStreams(ctx, bus, logger); err != nil {
		cancel()
		t.Fatalf("streams: %v", err)
	}

	tournamentRepo := &tournamentdb.TournamentDBImpl{DB: db}
	rosterRepo := &rosterdb.RosterDBImpl{DB: db}
	rosterSvc := rosterservice.NewRosterService(rosterRepo, bus, logger)
	tournamentSvc := tournamentservice.NewTournamentService(
		tournamentRepo,
		rosterSvc,
		bus,
		logger,
		observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("integration"),
	)

	t.Cleanup(cancel)

	return &TestEnvironment{
		Ctx:               ctx,
		Cancel:            cancel,
		PgContainer:       pg,
		NatsContainer:     nc,
		DB:                db,
		PostgresDSN:       dsn,
		NatsURL:           natsURL,
		EventBus:          bus,
		TournamentRepo:    tournamentRepo,
		RosterRepo:        rosterRepo,
		TournamentService: tournamentSvc,
		RosterService:     rosterSvc,
	}
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	for name, m := range map[string]*migrate.Migrations{
		"tournament": tournamentmigrations.Migrations,
		"roster":     rostermigrations.Migrations,
	} {
		migrator := migrate.NewMigrator(db, m)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("init %s migrations: %w", name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("run %s migrations: %w", name, err)
		}
	}
	return nil
}

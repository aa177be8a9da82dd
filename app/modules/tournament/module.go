package tournament

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/showdown-live/scorebot/app/shared/eventbus"
	"github.com/showdown-live/scorebot/app/shared/observability"

	tournamentservice "github.com/showdown-live/scorebot/app/modules/tournament/application"
	tournamentdb "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/repositories"
	tournamentqueue "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/queue"
	tournamentrouter "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/router"
)

// Module bundles the tournament command layer: service, bus router and the
// raffle draw queue.
type Module struct {
	EventBus          eventbus.EventBus
	TournamentService tournamentservice.Service
	TournamentRouter  *tournamentrouter.TournamentRouter
	QueueService      tournamentqueue.QueueService
	observability     *observability.Observability
	cancelFunc        context.CancelFunc
}

// NewTournamentModule creates a new instance of the tournament module.
func NewTournamentModule(
	ctx context.Context,
	obs *observability.Observability,
	repo tournamentdb.Repository,
	roster tournamentservice.RosterSource,
	bus eventbus.EventBus,
	router *message.Router,
	postgresDSN string,
	routerCtx context.Context,
) (*Module, error) {
	service := tournamentservice.NewTournamentService(repo, roster, bus, obs.Logger, obs.Metrics, obs.Tracer)

	tournamentRouter := tournamentrouter.NewTournamentRouter(obs.Logger, router, bus, obs.Tracer)
	if err := tournamentRouter.Configure(routerCtx, service); err != nil {
		return nil, fmt.Errorf("failed to configure tournament router: %w", err)
	}

	queueService, err := tournamentqueue.NewService(ctx, postgresDSN, obs.Logger, service)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize raffle queue: %w", err)
	}

	return &Module{
		EventBus:          bus,
		TournamentService: service,
		TournamentRouter:  tournamentRouter,
		QueueService:      queueService,
		observability:     obs,
	}, nil
}

// Run starts the tournament module and blocks until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting tournament module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.QueueService.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to start raffle queue", "error", err)
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Tournament module goroutine stopped")
}

// Close stops the tournament module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping tournament module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Stop(context.Background()); err != nil {
			logger.Error("Error stopping raffle queue", "error", err)
		}
	}

	if m.TournamentRouter != nil {
		if err := m.TournamentRouter.Close(); err != nil {
			logger.Error("Error closing TournamentRouter", "error", err)
			return fmt.Errorf("error closing TournamentRouter: %w", err)
		}
	}

	logger.Info("Tournament module stopped")
	return nil
}

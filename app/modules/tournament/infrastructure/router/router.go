package tournamentrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/showdown-live/scorebot/app/shared/eventbus"
	"github.com/showdown-live/scorebot/app/shared/handlerwrapper"
	"go.opentelemetry.io/otel/trace"

	tournamentservice "github.com/showdown-live/scorebot/app/modules/tournament/application"
	tournamenthandlers "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/handlers"
)

// TournamentRouter wires the command subjects to their handlers.
type TournamentRouter struct {
	logger *slog.Logger
	Router *message.Router
	bus    eventbus.EventBus
	tracer trace.Tracer
}

// NewTournamentRouter creates a new TournamentRouter.
func NewTournamentRouter(
	logger *slog.Logger,
	router *message.Router,
	bus eventbus.EventBus,
	tracer trace.Tracer,
) *TournamentRouter {
	return &TournamentRouter{
		logger: logger,
		Router: router,
		bus:    bus,
		tracer: tracer,
	}
}

// Configure sets up the router with the necessary handlers and middleware.
func (r *TournamentRouter) Configure(ctx context.Context, service tournamentservice.Service) error {
	handlers := tournamenthandlers.NewTournamentHandlers(service)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(ctx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

type handlerDeps struct {
	router *message.Router
	bus    eventbus.EventBus
	logger *slog.Logger
	tracer trace.Tracer
}

// registerHandler registers a pure transformation-pattern handler with typed payload.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "tournament." + topic

	// Accepted writes fan out from inside the service; the only messages a
	// command handler produces are rejections.
	deps.router.AddHandler(
		handlerName,
		topic,
		deps.bus.Subscriber(),
		eventbus.SubjectCommandRejected,
		deps.bus.Publisher(),
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			handler,
		),
	)
}

// RegisterHandlers binds every command subject to its handler.
func (r *TournamentRouter) RegisterHandlers(ctx context.Context, handlers tournamenthandlers.Handlers) error {
	deps := handlerDeps{
		router: r.Router,
		bus:    r.bus,
		logger: r.logger,
		tracer: r.tracer,
	}

	registerHandler(deps, eventbus.SubjectCommandStart, handlers.HandleStartTournament)
	registerHandler(deps, eventbus.SubjectCommandReset, handlers.HandleResetTournament)
	registerHandler(deps, eventbus.SubjectCommandEndRound, handlers.HandleEndRound)
	registerHandler(deps, eventbus.SubjectCommandEliminate, handlers.HandleEliminate)
	registerHandler(deps, eventbus.SubjectCommandRevive, handlers.HandleRevive)
	registerHandler(deps, eventbus.SubjectCommandRemove, handlers.HandleRemoveCompetitor)
	registerHandler(deps, eventbus.SubjectCommandAdjust, handlers.HandleAdjustPoints)
	registerHandler(deps, eventbus.SubjectCommandCorrect, handlers.HandleCorrectScore)
	registerHandler(deps, eventbus.SubjectCommandUndo, handlers.HandleUndo)
	registerHandler(deps, eventbus.SubjectCommandSetConfig, handlers.HandleUpdateSettings)
	registerHandler(deps, eventbus.SubjectCommandSetLock, handlers.HandleSetRoundLock)
	registerHandler(deps, eventbus.SubjectCommandSetRaffle, handlers.HandleSetRaffleWinners)

	return nil
}

// Close stops the router.
func (r *TournamentRouter) Close() error {
	return r.Router.Close()
}

package tournamentservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/showdown-live/scorebot/app/shared/eventbus"
	"github.com/showdown-live/scorebot/app/shared/observability"
	"github.com/showdown-live/scorebot/app/shared/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	tournamentdb "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/repositories"
)

const serviceName = "TournamentService"

// Defaults applied on creation and reset.
var DefaultPlacementPoints = []int{10, 7, 5, 3, 2, 1, 1, 1, 1}

const (
	DefaultKillPoints  = 1
	DefaultTotalRounds = 5
)

// TournamentService implements the Service interface.
type TournamentService struct {
	repo     tournamentdb.Repository
	roster   RosterSource
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  observability.Metrics
	tracer   trace.Tracer
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(
	repo tournamentdb.Repository,
	roster RosterSource,
	bus eventbus.EventBus,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
) *TournamentService {
	return &TournamentService{
		repo:     repo,
		roster:   roster,
		eventBus: bus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
}

var _ Service = (*TournamentService)(nil)

// operationFunc is the signature for service operation functions.
type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery. This standardizes observability across all service methods.
func (s *TournamentService) withTelemetry(
	ctx context.Context,
	operationName string,
	tournamentID string,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("tournament_id", tournamentID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("tournament_id", tournamentID),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("tournament_id", tournamentID),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("tournament_id", tournamentID),
			slog.Any("failure_payload", result.Failure),
		)
	}

	if result.Success != nil {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			slog.String("operation", operationName),
			slog.String("tournament_id", tournamentID),
			slog.String("success_type", fmt.Sprintf("%T", result.Success)),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	return result, nil
}

// Package tournamentqueue schedules raffle draws on a River queue backed by
// the same Postgres instance as the event log.
package tournamentqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	tournamentservice "github.com/showdown-live/scorebot/app/modules/tournament/application"
)

// QueueService is the contract for raffle draw scheduling.
type QueueService interface {
	// ScheduleRaffleDraw schedules a draw to run at drawTime.
	ScheduleRaffleDraw(ctx context.Context, tournamentID, drawID string, drawTime time.Time, winnerCount int) error
	// HealthCheck verifies the queue's database connection.
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service handles raffle draw scheduling using River.
type Service struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewService creates a River-based queue service. River requires a pgx pool
// of its own; the DSN is the same one bun connects with.
func NewService(ctx context.Context, dsn string, logger *slog.Logger, service tournamentservice.Service) (*Service, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRaffleDrawWorker(logger, service))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	logger.InfoContext(ctx, "Raffle queue service initialized")
	return &Service{client: client, pool: pool, logger: logger}, nil
}

// ScheduleRaffleDraw inserts a raffle draw job to run at drawTime. Scheduling
// the same draw twice is deduplicated by job args.
func (s *Service) ScheduleRaffleDraw(ctx context.Context, tournamentID, drawID string, drawTime time.Time, winnerCount int) error {
	now := time.Now()
	if drawTime.Before(now.Add(5 * time.Second)) {
		return fmt.Errorf("draw time must be at least 5 seconds in the future")
	}

	job := RaffleDrawJob{
		TournamentID: tournamentID,
		DrawID:       drawID,
		WinnerCount:  winnerCount,
	}
	result, err := s.client.Insert(ctx, job, &river.InsertOpts{
		ScheduledAt: drawTime,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to schedule raffle draw: %w", err)
	}

	s.logger.InfoContext(ctx, "Raffle draw scheduled",
		slog.String("tournament_id", tournamentID),
		slog.String("draw_id", drawID),
		slog.Int64("job_id", result.Job.ID),
		slog.Duration("delay", drawTime.Sub(now)),
	)
	return nil
}

// HealthCheck verifies the queue's database connection.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("queue database unreachable: %w", err)
	}
	return nil
}

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.InfoContext(ctx, "Raffle queue service started")
	return nil
}

// Stop stops the River client and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "Raffle queue service stopped")
	return nil
}

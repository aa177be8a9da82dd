package tournamentqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	tournamentservice "github.com/showdown-live/scorebot/app/modules/tournament/application"
)

// RaffleDrawWorker executes scheduled raffle draws.
type RaffleDrawWorker struct {
	river.WorkerDefaults[RaffleDrawJob]
	logger  *slog.Logger
	service tournamentservice.Service
}

// NewRaffleDrawWorker creates a new RaffleDrawWorker.
func NewRaffleDrawWorker(logger *slog.Logger, service tournamentservice.Service) *RaffleDrawWorker {
	return &RaffleDrawWorker{logger: logger, service: service}
}

// Work runs the draw. The service stores the winners and announces them on
// the bus; a failed draw is retried by River.
func (w *RaffleDrawWorker) Work(ctx context.Context, job *river.Job[RaffleDrawJob]) error {
	args := job.Args
	w.logger.InfoContext(ctx, "Executing scheduled raffle draw",
		slog.String("tournament_id", args.TournamentID),
		slog.String("draw_id", args.DrawID),
		slog.Int("winner_count", args.WinnerCount),
	)

	if _, err := w.service.DrawRaffle(ctx, args.TournamentID, args.DrawID, args.WinnerCount); err != nil {
		return fmt.Errorf("raffle draw failed: %w", err)
	}
	return nil
}

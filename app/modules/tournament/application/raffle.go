package tournamentservice

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/showdown-live/scorebot/app/shared/eventbus"
	"github.com/showdown-live/scorebot/app/shared/results"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// DrawRaffle picks winnerCount competitors at random from the current
// standings (removed competitors are excluded by projection), stores them on
// the record and announces the draw. Invoked by the scheduled draw worker.
func (s *TournamentService) DrawRaffle(ctx context.Context, tournamentID, drawID string, winnerCount int) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "DrawRaffle", tournamentID, func(ctx context.Context) (results.OperationResult, error) {
		t, err := s.loadOrCreate(ctx, tournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}

		snapshot, err := s.projectSnapshot(ctx, t)
		if err != nil {
			return results.OperationResult{}, err
		}

		pool := make([]tournamenttypes.CompetitorID, 0, len(snapshot.Standings))
		for _, st := range snapshot.Standings {
			pool = append(pool, st.CompetitorID)
		}
		rand.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		// Clamp both ends; the worker must survive whatever count the job row
		// carries.
		if winnerCount < 0 {
			winnerCount = 0
		}
		if winnerCount > len(pool) {
			winnerCount = len(pool)
		}
		winners := pool[:winnerCount]

		t.RaffleWinners = winners
		if err := s.repo.UpdateTournament(ctx, t); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to store raffle winners: %w", err)
		}

		if err := s.publishConfigUpdated(ctx, t, false); err != nil {
			return results.OperationResult{}, err
		}
		done := tournamentevents.RaffleDrawCompletedPayload{
			TournamentID: tournamentID,
			DrawID:       drawID,
			Winners:      winners,
		}
		if err := s.publishJSON(ctx, eventbus.SubjectRaffleDrawComplete, done); err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: done}, nil
	})
}

package tournamentservice

import (
	"context"
	"fmt"

	"github.com/showdown-live/scorebot/app/shared/results"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
)

// RetractLastAction flips the retracted flag on the newest eligible event.
// Structural transitions (tournament_start, round_end) are never retracted.
// Calling undo with nothing eligible is a successful no-op.
func (s *TournamentService) RetractLastAction(ctx context.Context, payload tournamentevents.UndoPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "RetractLastAction", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		evt, err := s.repo.RetractLastEligible(ctx, payload.TournamentID)
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to retract event: %w", err)
		}

		if evt == nil {
			return results.OperationResult{Success: tournamentevents.UndoAppliedPayload{
				TournamentID: payload.TournamentID,
				NoOp:         true,
			}}, nil
		}

		if err := s.publishEventRetracted(ctx, payload.TournamentID, evt.ID); err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: tournamentevents.UndoAppliedPayload{
			TournamentID: payload.TournamentID,
			EventID:      evt.ID,
		}}, nil
	})
}

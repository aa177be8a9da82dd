package tournamentservice

import (
	"context"
	"fmt"

	"github.com/showdown-live/scorebot/app/shared/results"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
)

// ResetTournament destroys the event log and reverts the record to lobby
// defaults. Unconditionally allowed; there is no undo past this point.
func (s *TournamentService) ResetTournament(ctx context.Context, payload tournamentevents.ResetTournamentPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ResetTournament", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		if err := s.repo.WipeEvents(ctx, payload.TournamentID); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to wipe event log: %w", err)
		}

		t := defaultTournament(payload.TournamentID)
		if err := s.repo.SaveTournament(ctx, t); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to reset tournament record: %w", err)
		}

		// Reset=true tells read models to drop their cached log wholesale.
		if err := s.publishConfigUpdated(ctx, t, true); err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: tournamentevents.ConfigUpdatedPayload{Tournament: *t, Reset: true}}, nil
	})
}

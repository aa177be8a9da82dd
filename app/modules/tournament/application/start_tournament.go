package tournamentservice

import (
	"context"
	"fmt"

	"github.com/showdown-live/scorebot/app/shared/results"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// StartTournament moves the tournament from the lobby into round one and
// appends the protected tournament_start event.
func (s *TournamentService) StartTournament(ctx context.Context, payload tournamentevents.StartTournamentPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "StartTournament", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		t, err := s.loadOrCreate(ctx, payload.TournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}

		if t.Status == tournamenttypes.StatusActive {
			return results.OperationResult{
				Failure: rejection(payload.TournamentID, "start", payload.Author, ErrAlreadyActive),
			}, nil
		}
		// A finished tournament keeps CurrentRound on the frozen final round;
		// restarting there would replay that round's eliminations as live on
		// top of its round_end history. Restarting requires a reset.
		if t.Status == tournamenttypes.StatusFinished {
			return results.OperationResult{
				Failure: rejection(payload.TournamentID, "start", payload.Author, ErrAlreadyFinished),
			}, nil
		}

		t.Status = tournamenttypes.StatusActive
		if t.CurrentRound < 1 {
			t.CurrentRound = 1
		}
		t.RoundLocked = false
		if err := s.repo.UpdateTournament(ctx, t); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to update tournament: %w", err)
		}

		evt, err := s.repo.AppendEvent(ctx, &tournamenttypes.Event{
			TournamentID: payload.TournamentID,
			Round:        t.CurrentRound,
			Kind:         tournamenttypes.EventTournamentStart,
			Author:       payload.Author,
		})
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to append event: %w", err)
		}

		if err := s.publishConfigUpdated(ctx, t, false); err != nil {
			return results.OperationResult{}, err
		}
		if err := s.publishEventAppended(ctx, evt); err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: tournamentevents.EventAppendedPayload{Event: *evt}}, nil
	})
}

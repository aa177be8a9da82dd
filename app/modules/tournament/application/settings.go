package tournamentservice

import (
	"context"
	"fmt"

	"github.com/showdown-live/scorebot/app/shared/results"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
)

// UpdateSettings applies a partial configuration patch to the tournament
// record. Settings changes are not events; they mutate the record directly
// and fan out on the config stream.
func (s *TournamentService) UpdateSettings(ctx context.Context, payload tournamentevents.UpdateSettingsPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "UpdateSettings", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		t, err := s.loadOrCreate(ctx, payload.TournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}

		patch := payload.Patch
		if err := validatePatch(patch); err != nil {
			return results.OperationResult{
				Failure: rejection(payload.TournamentID, "set_config", payload.Author, err),
			}, nil
		}
		// A CurrentRound patch may point back at a completed round, which
		// makes the projector replay that round's eliminations as live again.
		// That is the manual recovery path for a mis-ended round; the
		// operator owns the consequences.
		if patch.CurrentRound != nil {
			t.CurrentRound = *patch.CurrentRound
		}
		if patch.TotalRounds != nil {
			t.TotalRounds = *patch.TotalRounds
		}
		if patch.PlacementPoints != nil {
			table := make([]int, len(*patch.PlacementPoints))
			copy(table, *patch.PlacementPoints)
			t.PlacementPoints = table
		}
		if patch.KillPoints != nil {
			t.KillPoints = *patch.KillPoints
		}

		if err := s.repo.UpdateTournament(ctx, t); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to update tournament: %w", err)
		}
		if err := s.publishConfigUpdated(ctx, t, false); err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: tournamentevents.ConfigUpdatedPayload{Tournament: *t}}, nil
	})
}

// validatePatch enforces the non-negativity of every point and round value.
// This is the only mutation path for the point configuration, so the check
// here is what keeps the scoring math non-negative by construction.
func validatePatch(patch tournamentevents.SettingsPatch) error {
	if patch.CurrentRound != nil && *patch.CurrentRound < 0 {
		return ErrInvalidSettings
	}
	if patch.TotalRounds != nil && *patch.TotalRounds < 0 {
		return ErrInvalidSettings
	}
	if patch.KillPoints != nil && *patch.KillPoints < 0 {
		return ErrInvalidSettings
	}
	if patch.PlacementPoints != nil {
		for _, points := range *patch.PlacementPoints {
			if points < 0 {
				return ErrInvalidSettings
			}
		}
	}
	return nil
}

// SetRoundLock toggles the flag that blocks elimination and revive edits for
// the in-progress round.
func (s *TournamentService) SetRoundLock(ctx context.Context, payload tournamentevents.SetRoundLockPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "SetRoundLock", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		t, err := s.loadOrCreate(ctx, payload.TournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}

		t.RoundLocked = payload.Locked
		if err := s.repo.UpdateTournament(ctx, t); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to update tournament: %w", err)
		}
		if err := s.publishConfigUpdated(ctx, t, false); err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: tournamentevents.ConfigUpdatedPayload{Tournament: *t}}, nil
	})
}

// SetRaffleWinners stores the raffle winner list on the tournament record.
// Raffle winners are display data with no scoring effect.
func (s *TournamentService) SetRaffleWinners(ctx context.Context, payload tournamentevents.SetRaffleWinnersPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "SetRaffleWinners", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		t, err := s.loadOrCreate(ctx, payload.TournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}

		t.RaffleWinners = payload.Winners
		if err := s.repo.UpdateTournament(ctx, t); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to update tournament: %w", err)
		}
		if err := s.publishConfigUpdated(ctx, t, false); err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: tournamentevents.ConfigUpdatedPayload{Tournament: *t}}, nil
	})
}

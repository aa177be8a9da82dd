package tournamentservice

import (
	"context"
	"fmt"

	"github.com/showdown-live/scorebot/app/shared/results"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// RecordElimination appends an eliminate event for one player slot. The
// projector decides whether it has live effect; duplicates are inert there,
// so the command layer only guards the round lock.
func (s *TournamentService) RecordElimination(ctx context.Context, payload tournamentevents.EliminatePayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "RecordElimination", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		t, err := s.loadOrCreate(ctx, payload.TournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}

		if t.RoundLocked {
			return results.OperationResult{
				Failure: rejection(payload.TournamentID, "eliminate", payload.Author, ErrRoundLocked),
			}, nil
		}

		evt, err := s.repo.AppendEvent(ctx, &tournamenttypes.Event{
			TournamentID: payload.TournamentID,
			Round:        t.CurrentRound,
			Kind:         tournamenttypes.EventEliminate,
			Author:       payload.Author,
			Eliminate: &tournamenttypes.EliminatePayload{
				VictimID:     payload.VictimID,
				SlotIndex:    payload.SlotIndex,
				EliminatorID: payload.EliminatorID,
			},
		})
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to append event: %w", err)
		}

		if err := s.publishEventAppended(ctx, evt); err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: tournamentevents.EventAppendedPayload{Event: *evt}}, nil
	})
}

// RecordRevival appends a revive event reversing an elimination for one slot.
func (s *TournamentService) RecordRevival(ctx context.Context, payload tournamentevents.RevivePayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "RecordRevival", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		t, err := s.loadOrCreate(ctx, payload.TournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}

		if t.RoundLocked {
			return results.OperationResult{
				Failure: rejection(payload.TournamentID, "revive", payload.Author, ErrRoundLocked),
			}, nil
		}

		evt, err := s.repo.AppendEvent(ctx, &tournamenttypes.Event{
			TournamentID: payload.TournamentID,
			Round:        t.CurrentRound,
			Kind:         tournamenttypes.EventRevive,
			Author:       payload.Author,
			Revive: &tournamenttypes.RevivePayload{
				CompetitorID: payload.CompetitorID,
				SlotIndex:    payload.SlotIndex,
			},
		})
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to append event: %w", err)
		}

		if err := s.publishEventAppended(ctx, evt); err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: tournamentevents.EventAppendedPayload{Event: *evt}}, nil
	})
}

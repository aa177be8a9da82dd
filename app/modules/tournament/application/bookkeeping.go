package tournamentservice

import (
	"context"
	"fmt"

	"github.com/showdown-live/scorebot/app/shared/results"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// Round-independent bookkeeping events: removal, manual adjustments and
// historical corrections. None of them touch the tournament record, they only
// append to the log. Round 0 marks them as round-independent.

// RemoveCompetitor hides a competitor from the live view. Their contributions
// to already-completed rounds stay on the books.
func (s *TournamentService) RemoveCompetitor(ctx context.Context, payload tournamentevents.RemoveCompetitorPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "RemoveCompetitor", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		evt, err := s.repo.AppendEvent(ctx, &tournamenttypes.Event{
			TournamentID: payload.TournamentID,
			Kind:         tournamenttypes.EventCompetitorRemove,
			Author:       payload.Author,
			Remove: &tournamenttypes.RemovePayload{
				CompetitorID: payload.CompetitorID,
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

// AdjustPoints appends a cumulative manual point delta for one competitor.
func (s *TournamentService) AdjustPoints(ctx context.Context, payload tournamentevents.AdjustPointsPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "AdjustPoints", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		evt, err := s.repo.AppendEvent(ctx, &tournamenttypes.Event{
			TournamentID: payload.TournamentID,
			Kind:         tournamenttypes.EventPointsAdjust,
			Author:       payload.Author,
			Adjust: &tournamenttypes.AdjustPayload{
				CompetitorID:           payload.CompetitorID,
				EliminationPointsDelta: payload.EliminationPointsDelta,
				PlacementPointsDelta:   payload.PlacementPointsDelta,
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

// CorrectScore appends a score_correction overwriting one (competitor, round)
// placement line. The latest correction wins during projection; a correction
// for a round with no round_end on file is accepted but stays inert.
func (s *TournamentService) CorrectScore(ctx context.Context, payload tournamentevents.CorrectScorePayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "CorrectScore", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		evt, err := s.repo.AppendEvent(ctx, &tournamenttypes.Event{
			TournamentID: payload.TournamentID,
			Round:        payload.Round,
			Kind:         tournamenttypes.EventScoreCorrection,
			Author:       payload.Author,
			Correction: &tournamenttypes.CorrectionPayload{
				CompetitorID:      payload.CompetitorID,
				Round:             payload.Round,
				Eliminations:      payload.Eliminations,
				EliminationPoints: payload.EliminationPoints,
				PlacementPoints:   payload.PlacementPoints,
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

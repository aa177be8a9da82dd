package tournamentservice

import (
	"context"
	"fmt"

	"github.com/showdown-live/scorebot/app/shared/results"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
	"github.com/showdown-live/scorebot/app/modules/tournament/domain/projection"
	"github.com/showdown-live/scorebot/app/modules/tournament/domain/scoring"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// EndRound freezes the in-progress round into a protected round_end event and
// advances the tournament, finishing it after the configured total rounds.
//
// Ranking: competitors still alive come first in standings order, then the
// eliminated list reversed, so the last competitor to fall ranks directly
// below the survivors. Rank is position + 1.
func (s *TournamentService) EndRound(ctx context.Context, payload tournamentevents.EndRoundPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "EndRound", payload.TournamentID, func(ctx context.Context) (results.OperationResult, error) {
		t, err := s.loadOrCreate(ctx, payload.TournamentID)
		if err != nil {
			return results.OperationResult{}, err
		}

		if t.Status == tournamenttypes.StatusFinished {
			return results.OperationResult{
				Failure: rejection(payload.TournamentID, "end_round", payload.Author, ErrAlreadyFinished),
			}, nil
		}
		if t.Status != tournamenttypes.StatusActive {
			return results.OperationResult{
				Failure: rejection(payload.TournamentID, "end_round", payload.Author, ErrNotActive),
			}, nil
		}

		snapshot, err := s.projectSnapshot(ctx, t)
		if err != nil {
			return results.OperationResult{}, err
		}

		placements := rankRound(snapshot, t)

		evt, err := s.repo.AppendEvent(ctx, &tournamenttypes.Event{
			TournamentID: payload.TournamentID,
			Round:        t.CurrentRound,
			Kind:         tournamenttypes.EventRoundEnd,
			Author:       payload.Author,
			RoundEnd: &tournamenttypes.RoundEndPayload{
				Round:      t.CurrentRound,
				Placements: placements,
			},
		})
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to append event: %w", err)
		}

		if t.CurrentRound >= t.TotalRounds {
			t.Status = tournamenttypes.StatusFinished
		} else {
			t.CurrentRound++
		}
		// A lock never carries into the next round.
		t.RoundLocked = false
		if err := s.repo.UpdateTournament(ctx, t); err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to update tournament: %w", err)
		}

		if err := s.publishEventAppended(ctx, evt); err != nil {
			return results.OperationResult{}, err
		}
		if err := s.publishConfigUpdated(ctx, t, false); err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: tournamentevents.EventAppendedPayload{Event: *evt}}, nil
	})
}

// rankRound orders the round's competitors and scores each line from the
// live counts and the tournament's point configuration.
func rankRound(snapshot *tournamenttypes.Snapshot, t *tournamenttypes.Tournament) []tournamenttypes.Placement {
	order := projection.AliveInStandingsOrder(*snapshot)
	for i := len(snapshot.EliminatedThisRound) - 1; i >= 0; i-- {
		order = append(order, snapshot.EliminatedThisRound[i])
	}

	elims := make(map[tournamenttypes.CompetitorID]int, len(snapshot.Standings))
	for _, st := range snapshot.Standings {
		elims[st.CompetitorID] = st.RoundEliminations
	}

	placements := make([]tournamenttypes.Placement, 0, len(order))
	for i, id := range order {
		rank := i + 1
		placements = append(placements, tournamenttypes.Placement{
			CompetitorID:      id,
			Rank:              rank,
			Eliminations:      elims[id],
			EliminationPoints: scoring.EliminationPoints(elims[id], t.KillPoints),
			PlacementPoints:   scoring.PlacementPoints(rank, t.PlacementPoints),
		})
	}
	return placements
}

package tournamentservice

import (
	"context"
	"fmt"

	"github.com/showdown-live/scorebot/app/modules/tournament/domain/projection"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// projectSnapshot loads the roster and event log and runs the fold against an
// already-loaded tournament record.
func (s *TournamentService) projectSnapshot(ctx context.Context, t *tournamenttypes.Tournament) (*tournamenttypes.Snapshot, error) {
	roster, err := s.roster.ListCompetitors(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	events, err := s.repo.ListEvents(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event log: %w", err)
	}
	snapshot := projection.Project(roster, events, *t)
	return &snapshot, nil
}

// GetSnapshot computes the authoritative view from the current log.
func (s *TournamentService) GetSnapshot(ctx context.Context, tournamentID string) (*tournamenttypes.Snapshot, error) {
	t, err := s.loadOrCreate(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.projectSnapshot(ctx, t)
}

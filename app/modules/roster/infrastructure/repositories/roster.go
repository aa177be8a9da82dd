package rosterdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// RosterDBImpl implements Repository using bun.
type RosterDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*RosterDBImpl)(nil)

func (db *RosterDBImpl) ListCompetitors(ctx context.Context, tournamentID string) ([]tournamenttypes.Competitor, error) {
	var models []Competitor
	err := db.DB.NewSelect().
		Model(&models).
		Where("tournament_id = ?", tournamentID).
		Order("name ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}

	out := make([]tournamenttypes.Competitor, 0, len(models))
	for i := range models {
		out = append(out, toDomain(&models[i]))
	}
	return out, nil
}

func (db *RosterDBImpl) AddCompetitor(ctx context.Context, tournamentID string, c tournamenttypes.Competitor) error {
	_, err := db.DB.NewInsert().
		Model(toModel(tournamentID, c)).
		On("CONFLICT (id, tournament_id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("players = EXCLUDED.players").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add competitor: %w", err)
	}
	return nil
}

func (db *RosterDBImpl) AddCompetitors(ctx context.Context, tournamentID string, cs []tournamenttypes.Competitor) error {
	if len(cs) == 0 {
		return nil
	}
	models := make([]*Competitor, 0, len(cs))
	for _, c := range cs {
		models = append(models, toModel(tournamentID, c))
	}
	_, err := db.DB.NewInsert().
		Model(&models).
		On("CONFLICT (id, tournament_id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("players = EXCLUDED.players").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add competitors: %w", err)
	}
	return nil
}

func (db *RosterDBImpl) DeleteCompetitor(ctx context.Context, tournamentID string, id tournamenttypes.CompetitorID) error {
	_, err := db.DB.NewDelete().
		Model((*Competitor)(nil)).
		Where("tournament_id = ?", tournamentID).
		Where("id = ?", string(id)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete competitor: %w", err)
	}
	return nil
}

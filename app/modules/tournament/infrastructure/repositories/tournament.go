package tournamentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// TournamentDBImpl implements Repository on bun.
type TournamentDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*TournamentDBImpl)(nil)

func (db *TournamentDBImpl) GetTournament(ctx context.Context, id string) (*tournamenttypes.Tournament, error) {
	model := new(Tournament)
	err := db.DB.NewSelect().Model(model).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return toTournamentDomain(model), nil
}

func (db *TournamentDBImpl) SaveTournament(ctx context.Context, t *tournamenttypes.Tournament) error {
	model := toTournamentModel(t)
	model.UpdatedAt = time.Now().UTC()
	_, err := db.DB.NewInsert().
		Model(model).
		On("CONFLICT (id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("current_round = EXCLUDED.current_round").
		Set("total_rounds = EXCLUDED.total_rounds").
		Set("placement_points = EXCLUDED.placement_points").
		Set("kill_points = EXCLUDED.kill_points").
		Set("round_locked = EXCLUDED.round_locked").
		Set("raffle_winners = EXCLUDED.raffle_winners").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save tournament: %w", err)
	}
	return nil
}

func (db *TournamentDBImpl) UpdateTournament(ctx context.Context, t *tournamenttypes.Tournament) error {
	model := toTournamentModel(t)
	model.UpdatedAt = time.Now().UTC()
	res, err := db.DB.NewUpdate().
		Model(model).
		Column("status", "current_round", "total_rounds", "placement_points",
			"kill_points", "round_locked", "raffle_winners", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update tournament: %w", err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

package tournamentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// AppendEvent inserts one log row. The database assigns the serial ID and the
// creation timestamp, which together define the event's position in the
// total order.
func (db *TournamentDBImpl) AppendEvent(ctx context.Context, evt *tournamenttypes.Event) (*tournamenttypes.Event, error) {
	payload, err := encodePayload(evt)
	if err != nil {
		return nil, err
	}

	model := &Event{
		TournamentID: evt.TournamentID,
		Round:        evt.Round,
		Kind:         string(evt.Kind),
		Author:       string(evt.Author),
		Payload:      payload,
	}

	_, err = db.DB.NewInsert().
		Model(model).
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	return toEventDomain(model)
}

func (db *TournamentDBImpl) ListEvents(ctx context.Context, tournamentID string) ([]tournamenttypes.Event, error) {
	var models []Event
	err := db.DB.NewSelect().
		Model(&models).
		Where("tournament_id = ?", tournamentID).
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]tournamenttypes.Event, 0, len(models))
	for i := range models {
		evt, err := toEventDomain(&models[i])
		if err != nil {
			return nil, err
		}
		events = append(events, *evt)
	}
	return events, nil
}

// RetractEvent is the single write path for the active -> retracted
// transition. The WHERE clause makes a second retraction a no-op.
func (db *TournamentDBImpl) RetractEvent(ctx context.Context, tournamentID string, eventID int64) (bool, error) {
	res, err := db.DB.NewUpdate().
		Model((*Event)(nil)).
		Set("retracted = ?", true).
		Where("id = ?", eventID).
		Where("tournament_id = ?", tournamentID).
		Where("retracted = ?", false).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to retract event: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read retract result: %w", err)
	}
	return rows > 0, nil
}

func (db *TournamentDBImpl) RetractLastEligible(ctx context.Context, tournamentID string) (*tournamenttypes.Event, error) {
	protected := make([]string, 0, len(tournamenttypes.ProtectedKinds))
	for kind := range tournamenttypes.ProtectedKinds {
		protected = append(protected, string(kind))
	}

	model := new(Event)
	err := db.DB.NewSelect().
		Model(model).
		Where("tournament_id = ?", tournamentID).
		Where("retracted = ?", false).
		Where("kind NOT IN (?)", bun.In(protected)).
		Order("created_at DESC", "id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Nothing eligible; undo is a no-op.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find undo target: %w", err)
	}

	retracted, err := db.RetractEvent(ctx, tournamentID, model.ID)
	if err != nil {
		return nil, err
	}
	if !retracted {
		// Another admin retracted it in between; treat as no-op.
		return nil, nil
	}

	model.Retracted = true
	return toEventDomain(model)
}

func (db *TournamentDBImpl) WipeEvents(ctx context.Context, tournamentID string) error {
	_, err := db.DB.NewDelete().
		Model((*Event)(nil)).
		Where("tournament_id = ?", tournamentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to wipe events: %w", err)
	}
	return nil
}

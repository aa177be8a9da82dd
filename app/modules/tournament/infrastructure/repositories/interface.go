package tournamentdb

import (
	"context"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// Repository is the persistence boundary for the tournament record and its
// append-only event log.
type Repository interface {
	// GetTournament returns the tournament record or ErrNotFound.
	GetTournament(ctx context.Context, id string) (*tournamenttypes.Tournament, error)
	// SaveTournament inserts or replaces the tournament record.
	SaveTournament(ctx context.Context, t *tournamenttypes.Tournament) error
	// UpdateTournament writes the mutable configuration fields.
	UpdateTournament(ctx context.Context, t *tournamenttypes.Tournament) error

	// AppendEvent inserts a new log row and returns it with the log-assigned
	// ID and creation timestamp filled in.
	AppendEvent(ctx context.Context, evt *tournamenttypes.Event) (*tournamenttypes.Event, error)
	// ListEvents returns every event for a tournament ordered by
	// (created_at, id) ascending, retracted rows included.
	ListEvents(ctx context.Context, tournamentID string) ([]tournamenttypes.Event, error)
	// RetractEvent flips the retracted flag on one event. Retracting an
	// already-retracted or missing event is a no-op and reports false.
	RetractEvent(ctx context.Context, tournamentID string, eventID int64) (bool, error)
	// RetractLastEligible retracts the newest unretracted event whose kind is
	// not protected. Returns nil when no eligible event exists.
	RetractLastEligible(ctx context.Context, tournamentID string) (*tournamenttypes.Event, error)
	// WipeEvents deletes the entire log for a tournament (reset only).
	WipeEvents(ctx context.Context, tournamentID string) error
}

package rosterdb

import (
	"context"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// Repository is the persistence boundary for the competitor roster.
type Repository interface {
	// ListCompetitors returns the roster ordered by name, then ID.
	ListCompetitors(ctx context.Context, tournamentID string) ([]tournamenttypes.Competitor, error)
	// AddCompetitor inserts or replaces one roster entry.
	AddCompetitor(ctx context.Context, tournamentID string, c tournamenttypes.Competitor) error
	// AddCompetitors bulk-inserts roster entries, replacing on conflict.
	AddCompetitors(ctx context.Context, tournamentID string, cs []tournamenttypes.Competitor) error
	// DeleteCompetitor removes one roster entry entirely. This is roster
	// administration; hiding a competitor from the scoreboard is the
	// competitor_remove scoring event instead.
	DeleteCompetitor(ctx context.Context, tournamentID string, id tournamenttypes.CompetitorID) error
}

// Package rosterdb persists the competitor roster.
package rosterdb

import (
	"github.com/uptrace/bun"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// Competitor is the database model for one roster entry. A team carries two
// player names, a solo entry one.
type Competitor struct {
	bun.BaseModel `bun:"table:competitors,alias:c"`

	ID           string   `bun:"id,pk"`
	TournamentID string   `bun:"tournament_id,pk"`
	Name         string   `bun:"name,notnull"`
	Players      []string `bun:"players,type:jsonb"`
}

func toDomain(m *Competitor) tournamenttypes.Competitor {
	return tournamenttypes.Competitor{
		ID:      tournamenttypes.CompetitorID(m.ID),
		Name:    m.Name,
		Players: m.Players,
	}
}

func toModel(tournamentID string, c tournamenttypes.Competitor) *Competitor {
	return &Competitor{
		ID:           string(c.ID),
		TournamentID: tournamentID,
		Name:         c.Name,
		Players:      c.Players,
	}
}

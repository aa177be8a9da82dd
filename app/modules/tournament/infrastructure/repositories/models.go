package tournamentdb

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// Tournament is the singleton configuration record per running event. The
// round and point column defaults mirror the lobby defaults the service
// seeds, so rows created outside the service score the same way.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	ID              string    `bun:"id,pk,type:varchar(64)"`
	Status          string    `bun:"status,notnull,default:'lobby',type:varchar(16)"`
	CurrentRound    int       `bun:"current_round,notnull,default:0"`
	TotalRounds     int       `bun:"total_rounds,notnull,default:5"`
	PlacementPoints []int     `bun:"placement_points,type:jsonb"`
	KillPoints      int       `bun:"kill_points,notnull,default:1"`
	RoundLocked     bool      `bun:"round_locked,notnull,default:false"`
	RaffleWinners   []string  `bun:"raffle_winners,type:jsonb"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Event is one append-only log row. The retracted flag is the only column
// ever updated after insert.
type Event struct {
	bun.BaseModel `bun:"table:tournament_events,alias:e"`

	ID           int64           `bun:"id,pk,autoincrement"`
	TournamentID string          `bun:"tournament_id,notnull,type:varchar(64)"`
	Round        int             `bun:"round,notnull,default:0"`
	Kind         string          `bun:"kind,notnull,type:varchar(32)"`
	Author       string          `bun:"author,notnull,type:varchar(64)"`
	Retracted    bool            `bun:"retracted,notnull,default:false"`
	Payload      json.RawMessage `bun:"payload,type:jsonb"`
	CreatedAt    time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func toTournamentModel(t *tournamenttypes.Tournament) *Tournament {
	if t == nil {
		return nil
	}
	winners := make([]string, 0, len(t.RaffleWinners))
	for _, w := range t.RaffleWinners {
		winners = append(winners, string(w))
	}
	return &Tournament{
		ID:              t.ID,
		Status:          string(t.Status),
		CurrentRound:    t.CurrentRound,
		TotalRounds:     t.TotalRounds,
		PlacementPoints: t.PlacementPoints,
		KillPoints:      t.KillPoints,
		RoundLocked:     t.RoundLocked,
		RaffleWinners:   winners,
	}
}

func toTournamentDomain(m *Tournament) *tournamenttypes.Tournament {
	if m == nil {
		return nil
	}
	winners := make([]tournamenttypes.CompetitorID, 0, len(m.RaffleWinners))
	for _, w := range m.RaffleWinners {
		winners = append(winners, tournamenttypes.CompetitorID(w))
	}
	return &tournamenttypes.Tournament{
		ID:              m.ID,
		Status:          tournamenttypes.Status(m.Status),
		CurrentRound:    m.CurrentRound,
		TotalRounds:     m.TotalRounds,
		PlacementPoints: m.PlacementPoints,
		KillPoints:      m.KillPoints,
		RoundLocked:     m.RoundLocked,
		RaffleWinners:   winners,
	}
}

// encodePayload marshals the one payload variant matching the event kind.
func encodePayload(evt *tournamenttypes.Event) (json.RawMessage, error) {
	var payload any
	switch evt.Kind {
	case tournamenttypes.EventTournamentStart:
		payload = struct{}{}
	case tournamenttypes.EventEliminate:
		payload = evt.Eliminate
	case tournamenttypes.EventRevive:
		payload = evt.Revive
	case tournamenttypes.EventRoundEnd:
		payload = evt.RoundEnd
	case tournamenttypes.EventCompetitorRemove:
		payload = evt.Remove
	case tournamenttypes.EventPointsAdjust:
		payload = evt.Adjust
	case tournamenttypes.EventScoreCorrection:
		payload = evt.Correction
	default:
		return nil, fmt.Errorf("unknown event kind %q", evt.Kind)
	}
	if payload == nil {
		return nil, fmt.Errorf("event kind %q is missing its payload", evt.Kind)
	}
	return json.Marshal(payload)
}

func toEventDomain(m *Event) (*tournamenttypes.Event, error) {
	evt := &tournamenttypes.Event{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		Round:        m.Round,
		Kind:         tournamenttypes.EventKind(m.Kind),
		Author:       tournamenttypes.AdminID(m.Author),
		Retracted:    m.Retracted,
		CreatedAt:    m.CreatedAt,
	}

	var dst any
	switch evt.Kind {
	case tournamenttypes.EventTournamentStart:
		return evt, nil
	case tournamenttypes.EventEliminate:
		evt.Eliminate = &tournamenttypes.EliminatePayload{}
		dst = evt.Eliminate
	case tournamenttypes.EventRevive:
		evt.Revive = &tournamenttypes.RevivePayload{}
		dst = evt.Revive
	case tournamenttypes.EventRoundEnd:
		evt.RoundEnd = &tournamenttypes.RoundEndPayload{}
		dst = evt.RoundEnd
	case tournamenttypes.EventCompetitorRemove:
		evt.Remove = &tournamenttypes.RemovePayload{}
		dst = evt.Remove
	case tournamenttypes.EventPointsAdjust:
		evt.Adjust = &tournamenttypes.AdjustPayload{}
		dst = evt.Adjust
	case tournamenttypes.EventScoreCorrection:
		evt.Correction = &tournamenttypes.CorrectionPayload{}
		dst = evt.Correction
	default:
		return nil, fmt.Errorf("unknown event kind %q in row %d", m.Kind, m.ID)
	}

	if err := json.Unmarshal(m.Payload, dst); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload for event %d: %w", m.Kind, m.ID, err)
	}
	return evt, nil
}

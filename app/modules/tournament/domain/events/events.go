// Package tournamentevents defines the payloads that ride the bus: command
// requests consumed by the watermill router and the synchronization deltas
// fanned out to every connected client.
package tournamentevents

import (
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// --- Synchronization deltas (authoritative fan-out) ---

// EventAppendedPayload announces one new log row.
type EventAppendedPayload struct {
	Event tournamenttypes.Event `json:"event"`
}

// EventRetractedPayload announces that an event stopped contributing.
type EventRetractedPayload struct {
	TournamentID string `json:"tournament_id"`
	EventID      int64  `json:"event_id"`
}

// ConfigUpdatedPayload announces a tournament configuration change. Reset is
// set when the entire event log was wiped, telling read models to drop their
// local copy instead of patching it.
type ConfigUpdatedPayload struct {
	Tournament tournamenttypes.Tournament `json:"tournament"`
	Reset      bool                       `json:"reset"`
}

// --- Command requests (operator intents) ---

type StartTournamentPayload struct {
	TournamentID string                  `json:"tournament_id"`
	Author       tournamenttypes.AdminID `json:"author"`
}

type ResetTournamentPayload struct {
	TournamentID string                  `json:"tournament_id"`
	Author       tournamenttypes.AdminID `json:"author"`
}

type EndRoundPayload struct {
	TournamentID string                  `json:"tournament_id"`
	Author       tournamenttypes.AdminID `json:"author"`
}

type EliminatePayload struct {
	TournamentID string                       `json:"tournament_id"`
	VictimID     tournamenttypes.CompetitorID `json:"victim_id"`
	SlotIndex    int                          `json:"slot_index"`
	EliminatorID tournamenttypes.CompetitorID `json:"eliminator_id"`
	Author       tournamenttypes.AdminID      `json:"author"`
}

type RevivePayload struct {
	TournamentID string                       `json:"tournament_id"`
	CompetitorID tournamenttypes.CompetitorID `json:"competitor_id"`
	SlotIndex    int                          `json:"slot_index"`
	Author       tournamenttypes.AdminID      `json:"author"`
}

type RemoveCompetitorPayload struct {
	TournamentID string                       `json:"tournament_id"`
	CompetitorID tournamenttypes.CompetitorID `json:"competitor_id"`
	Author       tournamenttypes.AdminID      `json:"author"`
}

type AdjustPointsPayload struct {
	TournamentID           string                       `json:"tournament_id"`
	CompetitorID           tournamenttypes.CompetitorID `json:"competitor_id"`
	EliminationPointsDelta int                          `json:"elimination_points_delta"`
	PlacementPointsDelta   int                          `json:"placement_points_delta"`
	Author                 tournamenttypes.AdminID      `json:"author"`
}

type CorrectScorePayload struct {
	TournamentID      string                       `json:"tournament_id"`
	CompetitorID      tournamenttypes.CompetitorID `json:"competitor_id"`
	Round             int                          `json:"round"`
	Eliminations      int                          `json:"eliminations"`
	EliminationPoints int                          `json:"elimination_points"`
	PlacementPoints   int                          `json:"placement_points"`
	Author            tournamenttypes.AdminID      `json:"author"`
}

type UndoPayload struct {
	TournamentID string                  `json:"tournament_id"`
	Author       tournamenttypes.AdminID `json:"author"`
}

// SettingsPatch carries optional configuration updates; nil fields are left
// untouched.
type SettingsPatch struct {
	CurrentRound    *int   `json:"current_round,omitempty"`
	TotalRounds     *int   `json:"total_rounds,omitempty"`
	PlacementPoints *[]int `json:"placement_points,omitempty"`
	KillPoints      *int   `json:"kill_points,omitempty"`
}

type UpdateSettingsPayload struct {
	TournamentID string                  `json:"tournament_id"`
	Patch        SettingsPatch           `json:"patch"`
	Author       tournamenttypes.AdminID `json:"author"`
}

type SetRoundLockPayload struct {
	TournamentID string                  `json:"tournament_id"`
	Locked       bool                    `json:"locked"`
	Author       tournamenttypes.AdminID `json:"author"`
}

type SetRaffleWinnersPayload struct {
	TournamentID string                         `json:"tournament_id"`
	Winners      []tournamenttypes.CompetitorID `json:"winners"`
	Author       tournamenttypes.AdminID        `json:"author"`
}

// --- Outcomes ---

// CommandRejectedPayload reports a precondition violation back to the
// issuing operator. The shared log is untouched.
type CommandRejectedPayload struct {
	TournamentID string                  `json:"tournament_id"`
	Command      string                  `json:"command"`
	Reason       string                  `json:"reason"`
	Author       tournamenttypes.AdminID `json:"author"`
}

// UndoAppliedPayload reports which event an undo retracted; EventID is zero
// when the undo was a no-op.
type UndoAppliedPayload struct {
	TournamentID string `json:"tournament_id"`
	EventID      int64  `json:"event_id"`
	NoOp         bool   `json:"no_op"`
}

// RaffleDrawCompletedPayload announces the winners picked by a scheduled
// raffle draw.
type RaffleDrawCompletedPayload struct {
	TournamentID string                         `json:"tournament_id"`
	DrawID       string                         `json:"draw_id"`
	Winners      []tournamenttypes.CompetitorID `json:"winners"`
}

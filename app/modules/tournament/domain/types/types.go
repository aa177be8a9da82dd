package tournamenttypes

import "time"

// Status is the lifecycle state of a tournament.
type Status string

const (
	StatusLobby    Status = "lobby"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// CompetitorID identifies a team or solo player.
type CompetitorID string

// AdminID identifies the operator who authored an event.
type AdminID string

// EnvironmentalEliminator is the sentinel eliminator meaning nobody gets
// credit for the kill (storm, fall damage, disconnect).
const EnvironmentalEliminator CompetitorID = "environment"

// EventKind is the closed vocabulary of scoring events.
type EventKind string

const (
	EventTournamentStart  EventKind = "tournament_start"
	EventEliminate        EventKind = "eliminate"
	EventRevive           EventKind = "revive"
	EventRoundEnd         EventKind = "round_end"
	EventCompetitorRemove EventKind = "competitor_remove"
	EventPointsAdjust     EventKind = "points_adjust"
	EventScoreCorrection  EventKind = "score_correction"
)

// ProtectedKinds are structural transitions that undo may never retract.
var ProtectedKinds = map[EventKind]bool{
	EventTournamentStart: true,
	EventRoundEnd:        true,
}

// Tournament is the singleton aggregate root for a running event.
type Tournament struct {
	ID              string         `json:"id"`
	Status          Status         `json:"status"`
	CurrentRound    int            `json:"current_round"`
	TotalRounds     int            `json:"total_rounds"`
	PlacementPoints []int          `json:"placement_points"`
	KillPoints      int            `json:"kill_points"`
	RoundLocked     bool           `json:"round_locked"`
	RaffleWinners   []CompetitorID `json:"raffle_winners,omitempty"`
}

// Competitor is a team (two player slots) or a solo player (one slot),
// supplied by the roster source.
type Competitor struct {
	ID      CompetitorID `json:"id"`
	Name    string       `json:"name"`
	Players []string     `json:"players"`
}

// Event is one immutable entry in the per-tournament log. Exactly one payload
// pointer is set, matching Kind; retraction is the only permitted mutation
// and only the log repository performs it.
type Event struct {
	ID           int64     `json:"id"`
	TournamentID string    `json:"tournament_id"`
	Round        int       `json:"round"`
	Kind         EventKind `json:"kind"`
	Author       AdminID   `json:"author"`
	Retracted    bool      `json:"retracted"`
	CreatedAt    time.Time `json:"created_at"`

	Eliminate  *EliminatePayload  `json:"eliminate,omitempty"`
	Revive     *RevivePayload     `json:"revive,omitempty"`
	RoundEnd   *RoundEndPayload   `json:"round_end,omitempty"`
	Remove     *RemovePayload     `json:"remove,omitempty"`
	Adjust     *AdjustPayload     `json:"adjust,omitempty"`
	Correction *CorrectionPayload `json:"correction,omitempty"`
}

// EliminatePayload records one player slot going down.
type EliminatePayload struct {
	VictimID     CompetitorID `json:"victim_id"`
	SlotIndex    int          `json:"slot_index"`
	EliminatorID CompetitorID `json:"eliminator_id"`
}

// RevivePayload reverses an elimination for one slot.
type RevivePayload struct {
	CompetitorID CompetitorID `json:"competitor_id"`
	SlotIndex    int          `json:"slot_index"`
}

// Placement is one competitor's line in a completed round.
type Placement struct {
	CompetitorID      CompetitorID `json:"competitor_id"`
	Rank              int          `json:"rank"`
	Eliminations      int          `json:"eliminations"`
	EliminationPoints int          `json:"elimination_points"`
	PlacementPoints   int          `json:"placement_points"`
}

// RoundEndPayload freezes a round into history.
type RoundEndPayload struct {
	Round      int         `json:"round"`
	Placements []Placement `json:"placements"`
}

// RemovePayload hides a competitor from the live view. Historical
// contributions to already-completed rounds are retained.
type RemovePayload struct {
	CompetitorID CompetitorID `json:"competitor_id"`
}

// AdjustPayload is a cumulative manual point delta, independent of any round.
type AdjustPayload struct {
	CompetitorID           CompetitorID `json:"competitor_id"`
	EliminationPointsDelta int          `json:"elimination_points_delta"`
	PlacementPointsDelta   int          `json:"placement_points_delta"`
}

// CorrectionPayload overwrites the scoring fields of one (competitor, round)
// historical placement entry.
type CorrectionPayload struct {
	CompetitorID      CompetitorID `json:"competitor_id"`
	Round             int          `json:"round"`
	Eliminations      int          `json:"eliminations"`
	EliminationPoints int          `json:"elimination_points"`
	PlacementPoints   int          `json:"placement_points"`
}

// SlotState is the live status of one player slot.
type SlotState struct {
	Name  string `json:"name"`
	Alive bool   `json:"alive"`
}

// Standing is one competitor's row in the snapshot.
type Standing struct {
	CompetitorID      CompetitorID `json:"competitor_id"`
	Name              string       `json:"name"`
	Slots             []SlotState  `json:"slots"`
	Alive             bool         `json:"alive"`
	EliminationPoints int          `json:"elimination_points"`
	PlacementPoints   int          `json:"placement_points"`
	TotalPoints       int          `json:"total_points"`
	RoundEliminations int          `json:"round_eliminations"`
}

// RoundResult is a completed round reconstructed from its round_end event,
// amended by any later corrections.
type RoundResult struct {
	Round      int         `json:"round"`
	Placements []Placement `json:"placements"`
}

// Snapshot is the authoritative tournament view: a pure function of
// (roster, event log, configuration). Ordering of every slice is
// deterministic so two clients holding the same log render identically.
type Snapshot struct {
	TournamentID        string         `json:"tournament_id"`
	Status              Status         `json:"status"`
	CurrentRound        int            `json:"current_round"`
	RoundLocked         bool           `json:"round_locked"`
	Standings           []Standing     `json:"standings"`
	Rounds              []RoundResult  `json:"rounds"`
	EliminatedThisRound []CompetitorID `json:"eliminated_this_round"`
	RaffleWinners       []CompetitorID `json:"raffle_winners,omitempty"`
}

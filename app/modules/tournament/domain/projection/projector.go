// Package projection folds the tournament event log into the authoritative
// snapshot. The fold is a pure function of (roster, events, tournament
// record): two clients holding the same inputs compute byte-identical
// snapshots, so every slice below is assembled in a deterministic order and
// no map iteration order ever leaks into the output.
package projection

import (
	"sort"

	"github.com/showdown-live/scorebot/app/modules/tournament/domain/scoring"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

type adjustment struct {
	eliminationPoints int
	placementPoints   int
}

type liveState struct {
	slotsAlive map[tournamenttypes.CompetitorID][]bool
	// creditedBy remembers which eliminator was credited for downing a slot,
	// so a later revive can hand the credit back.
	creditedBy   map[tournamenttypes.CompetitorID][]tournamenttypes.CompetitorID
	eliminations map[tournamenttypes.CompetitorID]int
	downedOrder  []tournamenttypes.CompetitorID
}

// Project folds the retained events into a Snapshot.
func Project(
	roster []tournamenttypes.Competitor,
	events []tournamenttypes.Event,
	t tournamenttypes.Tournament,
) tournamenttypes.Snapshot {
	retained := retainOrdered(events)

	adjustments := foldAdjustments(retained)
	removed := foldRemovals(retained)
	rounds := foldCompletedRounds(retained)
	historical := foldHistoricalTotals(rounds)
	live := replayLiveRound(roster, retained, t)

	return assemble(roster, t, adjustments, removed, rounds, historical, live)
}

// retainOrdered drops retracted events and sorts the rest by creation time,
// with the log-assigned ID breaking exact-timestamp ties deterministically.
func retainOrdered(events []tournamenttypes.Event) []tournamenttypes.Event {
	retained := make([]tournamenttypes.Event, 0, len(events))
	for _, evt := range events {
		if !evt.Retracted {
			retained = append(retained, evt)
		}
	}
	sort.SliceStable(retained, func(i, j int) bool {
		if retained[i].CreatedAt.Equal(retained[j].CreatedAt) {
			return retained[i].ID < retained[j].ID
		}
		return retained[i].CreatedAt.Before(retained[j].CreatedAt)
	})
	return retained
}

// foldAdjustments sums points_adjust deltas per competitor.
func foldAdjustments(events []tournamenttypes.Event) map[tournamenttypes.CompetitorID]adjustment {
	adjustments := make(map[tournamenttypes.CompetitorID]adjustment)
	for _, evt := range events {
		if evt.Kind != tournamenttypes.EventPointsAdjust || evt.Adjust == nil {
			continue
		}
		adj := adjustments[evt.Adjust.CompetitorID]
		adj.eliminationPoints += evt.Adjust.EliminationPointsDelta
		adj.placementPoints += evt.Adjust.PlacementPointsDelta
		adjustments[evt.Adjust.CompetitorID] = adj
	}
	return adjustments
}

// foldRemovals collects competitors hidden from the live view. Their
// historical round entries stay untouched.
func foldRemovals(events []tournamenttypes.Event) map[tournamenttypes.CompetitorID]bool {
	removed := make(map[tournamenttypes.CompetitorID]bool)
	for _, evt := range events {
		if evt.Kind == tournamenttypes.EventCompetitorRemove && evt.Remove != nil {
			removed[evt.Remove.CompetitorID] = true
		}
	}
	return removed
}

// foldCompletedRounds rebuilds round results from round_end events and applies
// score corrections. For one round the latest round_end wins; corrections for
// a (competitor, round) pair fold last-write-wins in log order. A correction
// for a round that was never recorded is inert.
func foldCompletedRounds(events []tournamenttypes.Event) []tournamenttypes.RoundResult {
	byRound := make(map[int][]tournamenttypes.Placement)
	for _, evt := range events {
		if evt.Kind != tournamenttypes.EventRoundEnd || evt.RoundEnd == nil {
			continue
		}
		placements := make([]tournamenttypes.Placement, len(evt.RoundEnd.Placements))
		copy(placements, evt.RoundEnd.Placements)
		byRound[evt.RoundEnd.Round] = placements
	}

	// Events arrive already sorted, so applying corrections in slice order is
	// exactly the (CreatedAt, ID) last-write-wins the projection requires.
	for _, evt := range events {
		if evt.Kind != tournamenttypes.EventScoreCorrection || evt.Correction == nil {
			continue
		}
		c := evt.Correction
		placements, ok := byRound[c.Round]
		if !ok {
			continue
		}
		applied := false
		for i := range placements {
			if placements[i].CompetitorID == c.CompetitorID {
				placements[i].Eliminations = c.Eliminations
				placements[i].EliminationPoints = c.EliminationPoints
				placements[i].PlacementPoints = c.PlacementPoints
				applied = true
				break
			}
		}
		if !applied {
			// Competitor joined after the round concluded; synthesize an
			// entry at the end of the round's list.
			placements = append(placements, tournamenttypes.Placement{
				CompetitorID:      c.CompetitorID,
				Rank:              len(placements) + 1,
				Eliminations:      c.Eliminations,
				EliminationPoints: c.EliminationPoints,
				PlacementPoints:   c.PlacementPoints,
			})
		}
		byRound[c.Round] = placements
	}

	roundNumbers := make([]int, 0, len(byRound))
	for round := range byRound {
		roundNumbers = append(roundNumbers, round)
	}
	sort.Ints(roundNumbers)

	rounds := make([]tournamenttypes.RoundResult, 0, len(roundNumbers))
	for _, round := range roundNumbers {
		rounds = append(rounds, tournamenttypes.RoundResult{
			Round:      round,
			Placements: byRound[round],
		})
	}
	return rounds
}

// foldHistoricalTotals sums post-correction placement entries per competitor.
func foldHistoricalTotals(rounds []tournamenttypes.RoundResult) map[tournamenttypes.CompetitorID]adjustment {
	totals := make(map[tournamenttypes.CompetitorID]adjustment)
	for _, round := range rounds {
		for _, p := range round.Placements {
			total := totals[p.CompetitorID]
			total.eliminationPoints += p.EliminationPoints
			total.placementPoints += p.PlacementPoints
			totals[p.CompetitorID] = total
		}
	}
	return totals
}

// replayLiveRound replays eliminate/revive events for the current round.
// Slots default alive. A competitor enters the downed order once, when its
// last living slot goes down, and leaves it when revived. Eliminator credit
// is granted only on an alive-to-dead transition and handed back on revive,
// so an eliminate/revive pair leaves no residue.
func replayLiveRound(
	roster []tournamenttypes.Competitor,
	events []tournamenttypes.Event,
	t tournamenttypes.Tournament,
) liveState {
	state := liveState{
		slotsAlive:   make(map[tournamenttypes.CompetitorID][]bool),
		creditedBy:   make(map[tournamenttypes.CompetitorID][]tournamenttypes.CompetitorID),
		eliminations: make(map[tournamenttypes.CompetitorID]int),
	}
	for _, c := range roster {
		alive := make([]bool, len(c.Players))
		for i := range alive {
			alive[i] = true
		}
		state.slotsAlive[c.ID] = alive
		state.creditedBy[c.ID] = make([]tournamenttypes.CompetitorID, len(c.Players))
	}

	if t.Status != tournamenttypes.StatusActive {
		return state
	}

	for _, evt := range events {
		if evt.Round != t.CurrentRound {
			continue
		}
		switch evt.Kind {
		case tournamenttypes.EventEliminate:
			state.applyEliminate(evt.Eliminate)
		case tournamenttypes.EventRevive:
			state.applyRevive(evt.Revive)
		}
	}
	return state
}

func (s *liveState) applyEliminate(p *tournamenttypes.EliminatePayload) {
	if p == nil {
		return
	}
	alive, ok := s.slotsAlive[p.VictimID]
	if !ok || p.SlotIndex < 0 || p.SlotIndex >= len(alive) {
		return
	}
	if !alive[p.SlotIndex] {
		// Already down; a duplicate eliminate is inert.
		return
	}
	alive[p.SlotIndex] = false

	if p.EliminatorID != "" && p.EliminatorID != tournamenttypes.EnvironmentalEliminator {
		s.eliminations[p.EliminatorID]++
		s.creditedBy[p.VictimID][p.SlotIndex] = p.EliminatorID
	}

	if !anyAlive(alive) {
		s.downedOrder = append(s.downedOrder, p.VictimID)
	}
}

func (s *liveState) applyRevive(p *tournamenttypes.RevivePayload) {
	if p == nil {
		return
	}
	alive, ok := s.slotsAlive[p.CompetitorID]
	if !ok || p.SlotIndex < 0 || p.SlotIndex >= len(alive) {
		return
	}
	if alive[p.SlotIndex] {
		return
	}
	alive[p.SlotIndex] = true

	if eliminator := s.creditedBy[p.CompetitorID][p.SlotIndex]; eliminator != "" {
		s.eliminations[eliminator]--
		s.creditedBy[p.CompetitorID][p.SlotIndex] = ""
	}

	for i, id := range s.downedOrder {
		if id == p.CompetitorID {
			s.downedOrder = append(s.downedOrder[:i], s.downedOrder[i+1:]...)
			break
		}
	}
}

func anyAlive(slots []bool) bool {
	for _, a := range slots {
		if a {
			return true
		}
	}
	return false
}

// assemble builds the final snapshot in roster order; standings sort by total
// points descending with name then ID as deterministic tie-breaks.
func assemble(
	roster []tournamenttypes.Competitor,
	t tournamenttypes.Tournament,
	adjustments map[tournamenttypes.CompetitorID]adjustment,
	removed map[tournamenttypes.CompetitorID]bool,
	rounds []tournamenttypes.RoundResult,
	historical map[tournamenttypes.CompetitorID]adjustment,
	live liveState,
) tournamenttypes.Snapshot {
	standings := make([]tournamenttypes.Standing, 0, len(roster))
	for _, c := range roster {
		if removed[c.ID] {
			continue
		}

		slots := make([]tournamenttypes.SlotState, len(c.Players))
		aliveSlots := live.slotsAlive[c.ID]
		competitorAlive := t.Status != tournamenttypes.StatusActive
		for i, player := range c.Players {
			slotAlive := i < len(aliveSlots) && aliveSlots[i]
			slots[i] = tournamenttypes.SlotState{Name: player, Alive: slotAlive}
			if slotAlive {
				competitorAlive = true
			}
		}

		hist := historical[c.ID]
		adj := adjustments[c.ID]
		liveElims := live.eliminations[c.ID]

		eliminationPoints := hist.eliminationPoints +
			scoring.EliminationPoints(liveElims, t.KillPoints) +
			adj.eliminationPoints
		placementPoints := hist.placementPoints + adj.placementPoints

		standings = append(standings, tournamenttypes.Standing{
			CompetitorID:      c.ID,
			Name:              c.Name,
			Slots:             slots,
			Alive:             competitorAlive,
			EliminationPoints: eliminationPoints,
			PlacementPoints:   placementPoints,
			TotalPoints:       eliminationPoints + placementPoints,
			RoundEliminations: liveElims,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].TotalPoints != standings[j].TotalPoints {
			return standings[i].TotalPoints > standings[j].TotalPoints
		}
		if standings[i].Name != standings[j].Name {
			return standings[i].Name < standings[j].Name
		}
		return standings[i].CompetitorID < standings[j].CompetitorID
	})

	eliminated := make([]tournamenttypes.CompetitorID, 0, len(live.downedOrder))
	for _, id := range live.downedOrder {
		if !removed[id] {
			eliminated = append(eliminated, id)
		}
	}

	return tournamenttypes.Snapshot{
		TournamentID:        t.ID,
		Status:              t.Status,
		CurrentRound:        t.CurrentRound,
		RoundLocked:         t.RoundLocked,
		Standings:           standings,
		Rounds:              rounds,
		EliminatedThisRound: eliminated,
		RaffleWinners:       t.RaffleWinners,
	}
}

// AliveInStandingsOrder returns the competitors still alive in the live
// round, in snapshot standings order. That order is deterministic across
// clients, which is all the round-end ranking needs from it.
func AliveInStandingsOrder(snapshot tournamenttypes.Snapshot) []tournamenttypes.CompetitorID {
	alive := make([]tournamenttypes.CompetitorID, 0, len(snapshot.Standings))
	for _, s := range snapshot.Standings {
		if s.Alive {
			alive = append(alive, s.CompetitorID)
		}
	}
	return alive
}

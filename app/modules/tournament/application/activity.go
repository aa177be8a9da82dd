package tournamentservice

import (
	"context"
	"fmt"
	"time"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// ActivityEntry is one human-readable line of the recent-activity feed.
// Retracted events stay visible, flagged as undone, so operators can see what
// an undo actually reversed.
type ActivityEntry struct {
	EventID     int64                     `json:"event_id"`
	Kind        tournamenttypes.EventKind `json:"kind"`
	Round       int                       `json:"round"`
	Author      tournamenttypes.AdminID   `json:"author"`
	Retracted   bool                      `json:"retracted"`
	CreatedAt   time.Time                 `json:"created_at"`
	Description string                    `json:"description"`
}

const defaultActivityLimit = 25

// GetActivity returns the newest events as a readable feed, newest first.
func (s *TournamentService) GetActivity(ctx context.Context, tournamentID string, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	events, err := s.repo.ListEvents(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event log: %w", err)
	}

	names := map[tournamenttypes.CompetitorID]string{}
	if roster, err := s.roster.ListCompetitors(ctx, tournamentID); err == nil {
		for _, c := range roster {
			names[c.ID] = c.Name
		}
	}

	entries := make([]ActivityEntry, 0, limit)
	for i := len(events) - 1; i >= 0 && len(entries) < limit; i-- {
		evt := events[i]
		entries = append(entries, ActivityEntry{
			EventID:     evt.ID,
			Kind:        evt.Kind,
			Round:       evt.Round,
			Author:      evt.Author,
			Retracted:   evt.Retracted,
			CreatedAt:   evt.CreatedAt,
			Description: describeEvent(evt, names),
		})
	}
	return entries, nil
}

func competitorName(id tournamenttypes.CompetitorID, names map[tournamenttypes.CompetitorID]string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return string(id)
}

func describeEvent(evt tournamenttypes.Event, names map[tournamenttypes.CompetitorID]string) string {
	switch evt.Kind {
	case tournamenttypes.EventTournamentStart:
		return "tournament started"
	case tournamenttypes.EventEliminate:
		p := evt.Eliminate
		if p == nil {
			return "elimination recorded"
		}
		victim := competitorName(p.VictimID, names)
		if p.EliminatorID == "" || p.EliminatorID == tournamenttypes.EnvironmentalEliminator {
			return fmt.Sprintf("%s slot %d eliminated by the environment", victim, p.SlotIndex+1)
		}
		return fmt.Sprintf("%s slot %d eliminated by %s", victim, p.SlotIndex+1, competitorName(p.EliminatorID, names))
	case tournamenttypes.EventRevive:
		p := evt.Revive
		if p == nil {
			return "revival recorded"
		}
		return fmt.Sprintf("%s slot %d revived", competitorName(p.CompetitorID, names), p.SlotIndex+1)
	case tournamenttypes.EventRoundEnd:
		if evt.RoundEnd != nil {
			return fmt.Sprintf("round %d ended with %d placements", evt.RoundEnd.Round, len(evt.RoundEnd.Placements))
		}
		return fmt.Sprintf("round %d ended", evt.Round)
	case tournamenttypes.EventCompetitorRemove:
		if evt.Remove != nil {
			return fmt.Sprintf("%s removed from the board", competitorName(evt.Remove.CompetitorID, names))
		}
		return "competitor removed"
	case tournamenttypes.EventPointsAdjust:
		p := evt.Adjust
		if p == nil {
			return "points adjusted"
		}
		return fmt.Sprintf("%s adjusted by %+d elimination / %+d placement points",
			competitorName(p.CompetitorID, names), p.EliminationPointsDelta, p.PlacementPointsDelta)
	case tournamenttypes.EventScoreCorrection:
		p := evt.Correction
		if p == nil {
			return "score corrected"
		}
		return fmt.Sprintf("round %d score for %s corrected to %d elimination / %d placement points",
			p.Round, competitorName(p.CompetitorID, names), p.EliminationPoints, p.PlacementPoints)
	default:
		return string(evt.Kind)
	}
}

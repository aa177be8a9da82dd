package tournamentservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/showdown-live/scorebot/app/shared/eventbus"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
	tournamentdb "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/repositories"
)

// The synchronization contract: every accepted write is announced on the bus
// so each connected client can patch its local event cache and re-run the
// projector. The HTTP response alone is never the source of truth.

func (s *TournamentService) publishJSON(ctx context.Context, subject string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", subject, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := s.eventBus.Publish(ctx, subject, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

func (s *TournamentService) publishEventAppended(ctx context.Context, evt *tournamenttypes.Event) error {
	return s.publishJSON(ctx, eventbus.SubjectEventAppended, tournamentevents.EventAppendedPayload{Event: *evt})
}

func (s *TournamentService) publishEventRetracted(ctx context.Context, tournamentID string, eventID int64) error {
	return s.publishJSON(ctx, eventbus.SubjectEventRetracted, tournamentevents.EventRetractedPayload{
		TournamentID: tournamentID,
		EventID:      eventID,
	})
}

func (s *TournamentService) publishConfigUpdated(ctx context.Context, t *tournamenttypes.Tournament, reset bool) error {
	return s.publishJSON(ctx, eventbus.SubjectConfigUpdated, tournamentevents.ConfigUpdatedPayload{
		Tournament: *t,
		Reset:      reset,
	})
}

// defaultTournament is the record reset reverts to and the one lazily created
// on first use.
func defaultTournament(id string) *tournamenttypes.Tournament {
	table := make([]int, len(DefaultPlacementPoints))
	copy(table, DefaultPlacementPoints)
	return &tournamenttypes.Tournament{
		ID:              id,
		Status:          tournamenttypes.StatusLobby,
		CurrentRound:    0,
		TotalRounds:     DefaultTotalRounds,
		PlacementPoints: table,
		KillPoints:      DefaultKillPoints,
	}
}

// loadOrCreate fetches the tournament record, creating the default one on
// first reference so operators never have to provision explicitly.
func (s *TournamentService) loadOrCreate(ctx context.Context, id string) (*tournamenttypes.Tournament, error) {
	t, err := s.repo.GetTournament(ctx, id)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, tournamentdb.ErrNotFound) {
		return nil, fmt.Errorf("failed to load tournament: %w", err)
	}
	t = defaultTournament(id)
	if err := s.repo.SaveTournament(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return t, nil
}

func rejection(tournamentID, command string, author tournamenttypes.AdminID, reason error) tournamentevents.CommandRejectedPayload {
	return tournamentevents.CommandRejectedPayload{
		TournamentID: tournamentID,
		Command:      command,
		Reason:       reason.Error(),
		Author:       author,
	}
}

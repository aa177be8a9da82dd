// Package rosterservice manages the competitor roster: the list the projector
// folds over, plus bulk import from signup sheets.
package rosterservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/showdown-live/scorebot/app/shared/eventbus"

	rosterdb "github.com/showdown-live/scorebot/app/modules/roster/infrastructure/repositories"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// RosterUpdatedPayload announces a roster change so read models re-fetch the
// competitor list.
type RosterUpdatedPayload struct {
	TournamentID string `json:"tournament_id"`
}

// Service is the roster module's surface. It doubles as the tournament
// service's RosterSource.
type Service interface {
	ListCompetitors(ctx context.Context, tournamentID string) ([]tournamenttypes.Competitor, error)
	AddCompetitor(ctx context.Context, tournamentID string, c tournamenttypes.Competitor) error
	DeleteCompetitor(ctx context.Context, tournamentID string, id tournamenttypes.CompetitorID) error
	// ImportXLSX parses a signup sheet and bulk-adds its entries. Returns the
	// competitors that were imported.
	ImportXLSX(ctx context.Context, tournamentID string, data []byte) ([]tournamenttypes.Competitor, error)
}

// RosterService implements Service.
type RosterService struct {
	repo     rosterdb.Repository
	eventBus eventbus.EventBus
	logger   *slog.Logger
}

var _ Service = (*RosterService)(nil)

// NewRosterService creates a new RosterService.
func NewRosterService(repo rosterdb.Repository, bus eventbus.EventBus, logger *slog.Logger) *RosterService {
	return &RosterService{repo: repo, eventBus: bus, logger: logger}
}

func (s *RosterService) ListCompetitors(ctx context.Context, tournamentID string) ([]tournamenttypes.Competitor, error) {
	return s.repo.ListCompetitors(ctx, tournamentID)
}

func (s *RosterService) AddCompetitor(ctx context.Context, tournamentID string, c tournamenttypes.Competitor) error {
	if c.ID == "" || c.Name == "" {
		return fmt.Errorf("competitor needs an id and a name")
	}
	if len(c.Players) < 1 || len(c.Players) > 2 {
		return fmt.Errorf("competitor needs one or two players, got %d", len(c.Players))
	}

	if err := s.repo.AddCompetitor(ctx, tournamentID, c); err != nil {
		return err
	}
	s.publishRosterUpdated(ctx, tournamentID)
	return nil
}

func (s *RosterService) DeleteCompetitor(ctx context.Context, tournamentID string, id tournamenttypes.CompetitorID) error {
	if err := s.repo.DeleteCompetitor(ctx, tournamentID, id); err != nil {
		return err
	}
	s.publishRosterUpdated(ctx, tournamentID)
	return nil
}

func (s *RosterService) ImportXLSX(ctx context.Context, tournamentID string, data []byte) ([]tournamenttypes.Competitor, error) {
	competitors, err := ParseRosterXLSX(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster sheet: %w", err)
	}
	if len(competitors) == 0 {
		return nil, fmt.Errorf("roster sheet contains no competitors")
	}

	if err := s.repo.AddCompetitors(ctx, tournamentID, competitors); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Roster imported",
		slog.String("tournament_id", tournamentID),
		slog.Int("competitors", len(competitors)),
	)
	s.publishRosterUpdated(ctx, tournamentID)
	return competitors, nil
}

// publishRosterUpdated is best-effort: a failed announcement leaves the
// write intact and clients catch up on their next full fetch.
func (s *RosterService) publishRosterUpdated(ctx context.Context, tournamentID string) {
	body, err := json.Marshal(RosterUpdatedPayload{TournamentID: tournamentID})
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := s.eventBus.Publish(ctx, eventbus.SubjectRosterUpdated, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to announce roster update",
			slog.String("tournament_id", tournamentID),
			slog.Any("error", err),
		)
	}
}

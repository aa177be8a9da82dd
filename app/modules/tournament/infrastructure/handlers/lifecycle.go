package tournamenthandlers

import (
	"context"
	"errors"

	"github.com/showdown-live/scorebot/app/shared/handlerwrapper"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
)

// HandleStartTournament handles the start command.
func (h *TournamentHandlers) HandleStartTournament(ctx context.Context, payload *tournamentevents.StartTournamentPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.StartTournament(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

// HandleResetTournament handles the reset command.
func (h *TournamentHandlers) HandleResetTournament(ctx context.Context, payload *tournamentevents.ResetTournamentPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ResetTournament(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

// HandleEndRound handles the end-round command.
func (h *TournamentHandlers) HandleEndRound(ctx context.Context, payload *tournamentevents.EndRoundPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.EndRound(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

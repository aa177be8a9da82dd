package tournamenthandlers

import (
	"context"
	"errors"

	"github.com/showdown-live/scorebot/app/shared/handlerwrapper"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
)

// HandleEliminate handles the eliminate command.
func (h *TournamentHandlers) HandleEliminate(ctx context.Context, payload *tournamentevents.EliminatePayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RecordElimination(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

// HandleRevive handles the revive command.
func (h *TournamentHandlers) HandleRevive(ctx context.Context, payload *tournamentevents.RevivePayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RecordRevival(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

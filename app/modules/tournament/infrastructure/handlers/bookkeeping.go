package tournamenthandlers

import (
	"context"
	"errors"

	"github.com/showdown-live/scorebot/app/shared/handlerwrapper"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
)

// HandleRemoveCompetitor handles the remove-competitor command.
func (h *TournamentHandlers) HandleRemoveCompetitor(ctx context.Context, payload *tournamentevents.RemoveCompetitorPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RemoveCompetitor(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

// HandleAdjustPoints handles the adjust-points command.
func (h *TournamentHandlers) HandleAdjustPoints(ctx context.Context, payload *tournamentevents.AdjustPointsPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.AdjustPoints(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

// HandleCorrectScore handles the correct-score command.
func (h *TournamentHandlers) HandleCorrectScore(ctx context.Context, payload *tournamentevents.CorrectScorePayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.CorrectScore(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

// HandleUndo handles the undo command.
func (h *TournamentHandlers) HandleUndo(ctx context.Context, payload *tournamentevents.UndoPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RetractLastAction(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

package tournamenthandlers

import (
	"context"
	"errors"

	"github.com/showdown-live/scorebot/app/shared/handlerwrapper"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
)

// HandleUpdateSettings handles the set-config command.
func (h *TournamentHandlers) HandleUpdateSettings(ctx context.Context, payload *tournamentevents.UpdateSettingsPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.UpdateSettings(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

// HandleSetRoundLock handles the set-lock command.
func (h *TournamentHandlers) HandleSetRoundLock(ctx context.Context, payload *tournamentevents.SetRoundLockPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.SetRoundLock(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

// HandleSetRaffleWinners handles the set-raffle-winners command.
func (h *TournamentHandlers) HandleSetRaffleWinners(ctx context.Context, payload *tournamentevents.SetRaffleWinnersPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.SetRaffleWinners(ctx, *payload)
	if err != nil {
		return nil, err
	}
	return mapRejection(result), nil
}

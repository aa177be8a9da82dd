package tournamenthandlers

import (
	"context"

	"github.com/showdown-live/scorebot/app/shared/handlerwrapper"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
)

// Handlers is the set of bus command handlers for the tournament module.
type Handlers interface {
	HandleStartTournament(ctx context.Context, payload *tournamentevents.StartTournamentPayload) ([]handlerwrapper.Result, error)
	HandleResetTournament(ctx context.Context, payload *tournamentevents.ResetTournamentPayload) ([]handlerwrapper.Result, error)
	HandleEndRound(ctx context.Context, payload *tournamentevents.EndRoundPayload) ([]handlerwrapper.Result, error)
	HandleEliminate(ctx context.Context, payload *tournamentevents.EliminatePayload) ([]handlerwrapper.Result, error)
	HandleRevive(ctx context.Context, payload *tournamentevents.RevivePayload) ([]handlerwrapper.Result, error)
	HandleRemoveCompetitor(ctx context.Context, payload *tournamentevents.RemoveCompetitorPayload) ([]handlerwrapper.Result, error)
	HandleAdjustPoints(ctx context.Context, payload *tournamentevents.AdjustPointsPayload) ([]handlerwrapper.Result, error)
	HandleCorrectScore(ctx context.Context, payload *tournamentevents.CorrectScorePayload) ([]handlerwrapper.Result, error)
	HandleUndo(ctx context.Context, payload *tournamentevents.UndoPayload) ([]handlerwrapper.Result, error)
	HandleUpdateSettings(ctx context.Context, payload *tournamentevents.UpdateSettingsPayload) ([]handlerwrapper.Result, error)
	HandleSetRoundLock(ctx context.Context, payload *tournamentevents.SetRoundLockPayload) ([]handlerwrapper.Result, error)
	HandleSetRaffleWinners(ctx context.Context, payload *tournamentevents.SetRaffleWinnersPayload) ([]handlerwrapper.Result, error)
}

var _ Handlers = (*TournamentHandlers)(nil)

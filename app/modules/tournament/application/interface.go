package tournamentservice

import (
	"context"

	"github.com/showdown-live/scorebot/app/shared/results"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// Service is the command and query surface of the tournament module.
type Service interface {
	StartTournament(ctx context.Context, payload tournamentevents.StartTournamentPayload) (results.OperationResult, error)
	ResetTournament(ctx context.Context, payload tournamentevents.ResetTournamentPayload) (results.OperationResult, error)
	EndRound(ctx context.Context, payload tournamentevents.EndRoundPayload) (results.OperationResult, error)
	RecordElimination(ctx context.Context, payload tournamentevents.EliminatePayload) (results.OperationResult, error)
	RecordRevival(ctx context.Context, payload tournamentevents.RevivePayload) (results.OperationResult, error)
	RemoveCompetitor(ctx context.Context, payload tournamentevents.RemoveCompetitorPayload) (results.OperationResult, error)
	AdjustPoints(ctx context.Context, payload tournamentevents.AdjustPointsPayload) (results.OperationResult, error)
	CorrectScore(ctx context.Context, payload tournamentevents.CorrectScorePayload) (results.OperationResult, error)
	RetractLastAction(ctx context.Context, payload tournamentevents.UndoPayload) (results.OperationResult, error)
	UpdateSettings(ctx context.Context, payload tournamentevents.UpdateSettingsPayload) (results.OperationResult, error)
	SetRoundLock(ctx context.Context, payload tournamentevents.SetRoundLockPayload) (results.OperationResult, error)
	SetRaffleWinners(ctx context.Context, payload tournamentevents.SetRaffleWinnersPayload) (results.OperationResult, error)
	DrawRaffle(ctx context.Context, tournamentID, drawID string, winnerCount int) (results.OperationResult, error)

	GetSnapshot(ctx context.Context, tournamentID string) (*tournamenttypes.Snapshot, error)
	GetActivity(ctx context.Context, tournamentID string, limit int) ([]ActivityEntry, error)
}

// RosterSource supplies the competitor list the projector folds over. The
// roster module implements it.
type RosterSource interface {
	ListCompetitors(ctx context.Context, tournamentID string) ([]tournamenttypes.Competitor, error)
}

package tournamenthandlers

import (
	"context"

	"github.com/showdown-live/scorebot/app/shared/results"

	tournamentservice "github.com/showdown-live/scorebot/app/modules/tournament/application"
	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// FakeService returns a canned result for every operation and records which
// operations were called.
type FakeService struct {
	Result results.OperationResult
	Err    error
	Calls  []string
}

var _ tournamentservice.Service = (*FakeService)(nil)

func (f *FakeService) call(name string) (results.OperationResult, error) {
	f.Calls = append(f.Calls, name)
	return f.Result, f.Err
}

func (f *FakeService) StartTournament(ctx context.Context, payload tournamentevents.StartTournamentPayload) (results.OperationResult, error) {
	return f.call("StartTournament")
}

func (f *FakeService) ResetTournament(ctx context.Context, payload tournamentevents.ResetTournamentPayload) (results.OperationResult, error) {
	return f.call("ResetTournament")
}

func (f *FakeService) EndRound(ctx context.Context, payload tournamentevents.EndRoundPayload) (results.OperationResult, error) {
	return f.call("EndRound")
}

func (f *FakeService) RecordElimination(ctx context.Context, payload tournamentevents.EliminatePayload) (results.OperationResult, error) {
	return f.call("RecordElimination")
}

func (f *FakeService) RecordRevival(ctx context.Context, payload tournamentevents.RevivePayload) (results.OperationResult, error) {
	return f.call("RecordRevival")
}

func (f *FakeService) RemoveCompetitor(ctx context.Context, payload tournamentevents.RemoveCompetitorPayload) (results.OperationResult, error) {
	return f.call("RemoveCompetitor")
}

func (f *FakeService) AdjustPoints(ctx context.Context, payload tournamentevents.AdjustPointsPayload) (results.OperationResult, error) {
	return f.call("AdjustPoints")
}

func (f *FakeService) CorrectScore(ctx context.Context, payload tournamentevents.CorrectScorePayload) (results.OperationResult, error) {
	return f.call("CorrectScore")
}

func (f *FakeService) RetractLastAction(ctx context.Context, payload tournamentevents.UndoPayload) (results.OperationResult, error) {
	return f.call("RetractLastAction")
}

func (f *FakeService) UpdateSettings(ctx context.Context, payload tournamentevents.UpdateSettingsPayload) (results.OperationResult, error) {
	return f.call("UpdateSettings")
}

func (f *FakeService) SetRoundLock(ctx context.Context, payload tournamentevents.SetRoundLockPayload) (results.OperationResult, error) {
	return f.call("SetRoundLock")
}

func (f *FakeService) SetRaffleWinners(ctx context.Context, payload tournamentevents.SetRaffleWinnersPayload) (results.OperationResult, error) {
	return f.call("SetRaffleWinners")
}

func (f *FakeService) DrawRaffle(ctx context.Context, tournamentID, drawID string, winnerCount int) (results.OperationResult, error) {
	return f.call("DrawRaffle")
}

func (f *FakeService) GetSnapshot(ctx context.Context, tournamentID string) (*tournamenttypes.Snapshot, error) {
	f.Calls = append(f.Calls, "GetSnapshot")
	return &tournamenttypes.Snapshot{TournamentID: tournamentID}, nil
}

func (f *FakeService) GetActivity(ctx context.Context, tournamentID string, limit int) ([]tournamentservice.ActivityEntry, error) {
	f.Calls = append(f.Calls, "GetActivity")
	return nil, nil
}

package api

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/showdown-live/scorebot/app/shared/eventbus"
	"github.com/showdown-live/scorebot/app/shared/results"

	rosterservice "github.com/showdown-live/scorebot/app/modules/roster/application"
	tournamentservice "github.com/showdown-live/scorebot/app/modules/tournament/application"
	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
	tournamentqueue "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/queue"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

type fakeTournament struct {
	Result   results.OperationResult
	Err      error
	Snapshot *tournamenttypes.Snapshot
	Activity []tournamentservice.ActivityEntry
	Calls    []string
}

var _ tournamentservice.Service = (*fakeTournament)(nil)

func (f *fakeTournament) call(name string) (results.OperationResult, error) {
	f.Calls = append(f.Calls, name)
	return f.Result, f.Err
}

func (f *fakeTournament) StartTournament(ctx context.Context, p tournamentevents.StartTournamentPayload) (results.OperationResult, error) {
	return f.call("StartTournament")
}

func (f *fakeTournament) ResetTournament(ctx context.Context, p tournamentevents.ResetTournamentPayload) (results.OperationResult, error) {
	return f.call("ResetTournament")
}

func (f *fakeTournament) EndRound(ctx context.Context, p tournamentevents.EndRoundPayload) (results.OperationResult, error) {
	return f.call("EndRound")
}

func (f *fakeTournament) RecordElimination(ctx context.Context, p tournamentevents.EliminatePayload) (results.OperationResult, error) {
	return f.call("RecordElimination")
}

func (f *fakeTournament) RecordRevival(ctx context.Context, p tournamentevents.RevivePayload) (results.OperationResult, error) {
	return f.call("RecordRevival")
}

func (f *fakeTournament) RemoveCompetitor(ctx context.Context, p tournamentevents.RemoveCompetitorPayload) (results.OperationResult, error) {
	return f.call("RemoveCompetitor")
}

func (f *fakeTournament) AdjustPoints(ctx context.Context, p tournamentevents.AdjustPointsPayload) (results.OperationResult, error) {
	return f.call("AdjustPoints")
}

func (f *fakeTournament) CorrectScore(ctx context.Context, p tournamentevents.CorrectScorePayload) (results.OperationResult, error) {
	return f.call("CorrectScore")
}

func (f *fakeTournament) RetractLastAction(ctx context.Context, p tournamentevents.UndoPayload) (results.OperationResult, error) {
	return f.call("RetractLastAction")
}

func (f *fakeTournament) UpdateSettings(ctx context.Context, p tournamentevents.UpdateSettingsPayload) (results.OperationResult, error) {
	return f.call("UpdateSettings")
}

func (f *fakeTournament) SetRoundLock(ctx context.Context, p tournamentevents.SetRoundLockPayload) (results.OperationResult, error) {
	return f.call("SetRoundLock")
}

func (f *fakeTournament) SetRaffleWinners(ctx context.Context, p tournamentevents.SetRaffleWinnersPayload) (results.OperationResult, error) {
	return f.call("SetRaffleWinners")
}

func (f *fakeTournament) DrawRaffle(ctx context.Context, tournamentID, drawID string, winnerCount int) (results.OperationResult, error) {
	return f.call("DrawRaffle")
}

func (f *fakeTournament) GetSnapshot(ctx context.Context, tournamentID string) (*tournamenttypes.Snapshot, error) {
	f.Calls = append(f.Calls, "GetSnapshot")
	if f.Snapshot != nil {
		return f.Snapshot, nil
	}
	return &tournamenttypes.Snapshot{TournamentID: tournamentID, Status: tournamenttypes.StatusLobby}, nil
}

func (f *fakeTournament) GetActivity(ctx context.Context, tournamentID string, limit int) ([]tournamentservice.ActivityEntry, error) {
	f.Calls = append(f.Calls, "GetActivity")
	return f.Activity, nil
}

type fakeRoster struct {
	Competitors []tournamenttypes.Competitor
	Err         error
}

var _ rosterservice.Service = (*fakeRoster)(nil)

func (f *fakeRoster) ListCompetitors(ctx context.Context, tournamentID string) ([]tournamenttypes.Competitor, error) {
	return f.Competitors, f.Err
}

func (f *fakeRoster) AddCompetitor(ctx context.Context, tournamentID string, c tournamenttypes.Competitor) error {
	f.Competitors = append(f.Competitors, c)
	return f.Err
}

func (f *fakeRoster) DeleteCompetitor(ctx context.Context, tournamentID string, id tournamenttypes.CompetitorID) error {
	return f.Err
}

func (f *fakeRoster) ImportXLSX(ctx context.Context, tournamentID string, data []byte) ([]tournamenttypes.Competitor, error) {
	return f.Competitors, f.Err
}

type fakeQueue struct {
	Scheduled []string
	Err       error
}

var _ tournamentqueue.QueueService = (*fakeQueue)(nil)

func (f *fakeQueue) ScheduleRaffleDraw(ctx context.Context, tournamentID, drawID string, drawTime time.Time, winnerCount int) error {
	if f.Err != nil {
		return f.Err
	}
	f.Scheduled = append(f.Scheduled, drawID)
	return nil
}

func (f *fakeQueue) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeQueue) Start(ctx context.Context) error       { return nil }
func (f *fakeQueue) Stop(ctx context.Context) error        { return nil }

type fakeBus struct {
	mu       sync.Mutex
	subjects []string
}

var _ eventbus.EventBus = (*fakeBus)(nil)

func (f *fakeBus) Publish(ctx context.Context, subject string, msg *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeBus) PublishEphemeral(ctx context.Context, subject string, msg *message.Message) error {
	return f.Publish(ctx, subject, msg)
}

func (f *fakeBus) Subscribe(ctx context.Context, subject string) (<-chan *message.Message, error) {
	ch := make(chan *message.Message)
	close(ch)
	return ch, nil
}

func (f *fakeBus) CreateStream(ctx context.Context, streamName string, subjects []string) error {
	return nil
}
func (f *fakeBus) Publisher() message.Publisher   { return nil }
func (f *fakeBus) Subscriber() message.Subscriber { return nil }
func (f *fakeBus) Close() error                   { return nil }

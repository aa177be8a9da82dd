package tournamentservice

import (
	"context"
	"testing"

	"github.com/showdown-live/scorebot/app/shared/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

const testTournamentID = "showdown-2026"

func testRoster() []tournamenttypes.Competitor {
	return []tournamenttypes.Competitor{
		{ID: "team-a", Name: "Alpha", Players: []string{"a1", "a2"}},
		{ID: "team-b", Name: "Bravo", Players: []string{"b1", "b2"}},
		{ID: "solo-c", Name: "Charlie", Players: []string{"c1"}},
	}
}

func newTestService() (*TournamentService, *FakeRepository, *FakeEventBus) {
	repo := NewFakeRepository()
	bus := &FakeEventBus{}
	svc := NewTournamentService(
		repo,
		&FakeRosterSource{Competitors: testRoster()},
		bus,
		observability.NoOpLogger,
		observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
	return svc, repo, bus
}

func startTournament(t *testing.T, svc *TournamentService) {
	t.Helper()
	result, err := svc.StartTournament(context.Background(), tournamentevents.StartTournamentPayload{
		TournamentID: testTournamentID,
		Author:       "admin",
	})
	require.NoError(t, err)
	require.Nil(t, result.Failure)
}

func TestStartTournament(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()

	result, err := svc.StartTournament(ctx, tournamentevents.StartTournamentPayload{
		TournamentID: testTournamentID,
		Author:       "admin",
	})
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	success, ok := result.Success.(tournamentevents.EventAppendedPayload)
	require.True(t, ok)
	assert.Equal(t, tournamenttypes.EventTournamentStart, success.Event.Kind)
	assert.Equal(t, 1, success.Event.Round)

	stored, err := repo.GetTournament(ctx, testTournamentID)
	require.NoError(t, err)
	assert.Equal(t, tournamenttypes.StatusActive, stored.Status)
	assert.Equal(t, 1, stored.CurrentRound)

	assert.Len(t, decodePublished[tournamentevents.ConfigUpdatedPayload](bus, "tournament.config.updated"), 1)
	assert.Len(t, decodePublished[tournamentevents.EventAppendedPayload](bus, "tournament.event.appended"), 1)
}

func TestStartTournamentAlreadyActive(t *testing.T) {
	svc, _, _ := newTestService()
	startTournament(t, svc)

	result, err := svc.StartTournament(context.Background(), tournamentevents.StartTournamentPayload{
		TournamentID: testTournamentID,
		Author:       "admin",
	})
	require.NoError(t, err)
	require.Nil(t, result.Success)

	failure, ok := result.Failure.(tournamentevents.CommandRejectedPayload)
	require.True(t, ok)
	assert.Equal(t, "start", failure.Command)
	assert.Equal(t, ErrAlreadyActive.Error(), failure.Reason)
}

func TestStartTournamentAfterFinishRejected(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	total := 1
	_, err := svc.UpdateSettings(ctx, tournamentevents.UpdateSettingsPayload{
		TournamentID: testTournamentID,
		Patch:        tournamentevents.SettingsPatch{TotalRounds: &total},
		Author:       "admin",
	})
	require.NoError(t, err)

	_, err = svc.RecordElimination(ctx, tournamentevents.EliminatePayload{
		TournamentID: testTournamentID, VictimID: "solo-c", SlotIndex: 0, EliminatorID: "team-a", Author: "admin",
	})
	require.NoError(t, err)

	_, err = svc.EndRound(ctx, tournamentevents.EndRoundPayload{TournamentID: testTournamentID, Author: "admin"})
	require.NoError(t, err)

	result, err := svc.StartTournament(ctx, tournamentevents.StartTournamentPayload{
		TournamentID: testTournamentID, Author: "admin",
	})
	require.NoError(t, err)
	require.Nil(t, result.Success)
	failure, ok := result.Failure.(tournamentevents.CommandRejectedPayload)
	require.True(t, ok)
	assert.Equal(t, ErrAlreadyFinished.Error(), failure.Reason)

	// The frozen final round stays frozen: the kill is counted once and the
	// eliminated competitor is not replayed as a live death.
	stored, err := repo.GetTournament(ctx, testTournamentID)
	require.NoError(t, err)
	assert.Equal(t, tournamenttypes.StatusFinished, stored.Status)

	snapshot, err := svc.GetSnapshot(ctx, testTournamentID)
	require.NoError(t, err)
	for _, st := range snapshot.Standings {
		if st.CompetitorID == "team-a" {
			assert.Equal(t, 1, st.EliminationPoints)
		}
		if st.CompetitorID == "solo-c" {
			assert.True(t, st.Alive)
		}
	}
	assert.Empty(t, snapshot.EliminatedThisRound)
}

func TestRecordEliminationRoundLocked(t *testing.T) {
	svc, _, bus := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	_, err := svc.SetRoundLock(ctx, tournamentevents.SetRoundLockPayload{
		TournamentID: testTournamentID, Locked: true, Author: "admin",
	})
	require.NoError(t, err)

	result, err := svc.RecordElimination(ctx, tournamentevents.EliminatePayload{
		TournamentID: testTournamentID,
		VictimID:     "team-b",
		SlotIndex:    0,
		EliminatorID: "team-a",
		Author:       "admin",
	})
	require.NoError(t, err)
	require.Nil(t, result.Success)

	failure, ok := result.Failure.(tournamentevents.CommandRejectedPayload)
	require.True(t, ok)
	assert.Equal(t, ErrRoundLocked.Error(), failure.Reason)

	// The lock rejects revives the same way.
	result, err = svc.RecordRevival(ctx, tournamentevents.RevivePayload{
		TournamentID: testTournamentID, CompetitorID: "team-b", SlotIndex: 0, Author: "admin",
	})
	require.NoError(t, err)
	assert.NotNil(t, result.Failure)

	// Only the start event made it to the bus.
	assert.Len(t, decodePublished[tournamentevents.EventAppendedPayload](bus, "tournament.event.appended"), 1)
}

func TestRecordEliminationAppendsCurrentRound(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	result, err := svc.RecordElimination(ctx, tournamentevents.EliminatePayload{
		TournamentID: testTournamentID,
		VictimID:     "team-b",
		SlotIndex:    1,
		EliminatorID: "team-a",
		Author:       "admin",
	})
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	events, err := repo.ListEvents(ctx, testTournamentID)
	require.NoError(t, err)
	last := events[len(events)-1]
	assert.Equal(t, tournamenttypes.EventEliminate, last.Kind)
	assert.Equal(t, 1, last.Round)
	require.NotNil(t, last.Eliminate)
	assert.Equal(t, tournamenttypes.CompetitorID("team-b"), last.Eliminate.VictimID)

	appended := decodePublished[tournamentevents.EventAppendedPayload](bus, "tournament.event.appended")
	assert.Len(t, appended, 2)
}

func TestEndRoundRanksAndAdvances(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	// Bravo goes down entirely, both kills credited to Alpha.
	for slot := 0; slot < 2; slot++ {
		_, err := svc.RecordElimination(ctx, tournamentevents.EliminatePayload{
			TournamentID: testTournamentID,
			VictimID:     "team-b",
			SlotIndex:    slot,
			EliminatorID: "team-a",
			Author:       "admin",
		})
		require.NoError(t, err)
	}

	result, err := svc.EndRound(ctx, tournamentevents.EndRoundPayload{
		TournamentID: testTournamentID, Author: "admin",
	})
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	success, ok := result.Success.(tournamentevents.EventAppendedPayload)
	require.True(t, ok)
	require.NotNil(t, success.Event.RoundEnd)
	placements := success.Event.RoundEnd.Placements
	require.Len(t, placements, 3)

	// Alpha leads on kill points, Charlie second, Bravo eliminated last.
	assert.Equal(t, tournamenttypes.CompetitorID("team-a"), placements[0].CompetitorID)
	assert.Equal(t, 1, placements[0].Rank)
	assert.Equal(t, 2, placements[0].Eliminations)
	assert.Equal(t, 2, placements[0].EliminationPoints)
	assert.Equal(t, 10, placements[0].PlacementPoints)

	assert.Equal(t, tournamenttypes.CompetitorID("solo-c"), placements[1].CompetitorID)
	assert.Equal(t, 7, placements[1].PlacementPoints)

	assert.Equal(t, tournamenttypes.CompetitorID("team-b"), placements[2].CompetitorID)
	assert.Equal(t, 3, placements[2].Rank)
	assert.Equal(t, 5, placements[2].PlacementPoints)

	stored, err := repo.GetTournament(ctx, testTournamentID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentRound)
	assert.Equal(t, tournamenttypes.StatusActive, stored.Status)
	assert.False(t, stored.RoundLocked)
}

func TestEndRoundClearsLock(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	_, err := svc.SetRoundLock(ctx, tournamentevents.SetRoundLockPayload{
		TournamentID: testTournamentID, Locked: true, Author: "admin",
	})
	require.NoError(t, err)

	_, err = svc.EndRound(ctx, tournamentevents.EndRoundPayload{TournamentID: testTournamentID, Author: "admin"})
	require.NoError(t, err)

	stored, err := repo.GetTournament(ctx, testTournamentID)
	require.NoError(t, err)
	assert.False(t, stored.RoundLocked)
}

func TestEndRoundFinishesAfterTotalRounds(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	total := 1
	_, err := svc.UpdateSettings(ctx, tournamentevents.UpdateSettingsPayload{
		TournamentID: testTournamentID,
		Patch:        tournamentevents.SettingsPatch{TotalRounds: &total},
		Author:       "admin",
	})
	require.NoError(t, err)

	result, err := svc.EndRound(ctx, tournamentevents.EndRoundPayload{TournamentID: testTournamentID, Author: "admin"})
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	stored, err := repo.GetTournament(ctx, testTournamentID)
	require.NoError(t, err)
	assert.Equal(t, tournamenttypes.StatusFinished, stored.Status)

	result, err = svc.EndRound(ctx, tournamentevents.EndRoundPayload{TournamentID: testTournamentID, Author: "admin"})
	require.NoError(t, err)
	failure, ok := result.Failure.(tournamentevents.CommandRejectedPayload)
	require.True(t, ok)
	assert.Equal(t, ErrAlreadyFinished.Error(), failure.Reason)
}

func TestEndRoundRejectedInLobby(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.EndRound(context.Background(), tournamentevents.EndRoundPayload{
		TournamentID: testTournamentID, Author: "admin",
	})
	require.NoError(t, err)
	failure, ok := result.Failure.(tournamentevents.CommandRejectedPayload)
	require.True(t, ok)
	assert.Equal(t, ErrNotActive.Error(), failure.Reason)
}

func TestRetractLastAction(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	_, err := svc.RecordElimination(ctx, tournamentevents.EliminatePayload{
		TournamentID: testTournamentID, VictimID: "team-b", SlotIndex: 0, EliminatorID: "team-a", Author: "admin",
	})
	require.NoError(t, err)

	result, err := svc.RetractLastAction(ctx, tournamentevents.UndoPayload{TournamentID: testTournamentID, Author: "admin"})
	require.NoError(t, err)
	applied, ok := result.Success.(tournamentevents.UndoAppliedPayload)
	require.True(t, ok)
	assert.False(t, applied.NoOp)

	events, err := repo.ListEvents(ctx, testTournamentID)
	require.NoError(t, err)
	assert.True(t, events[len(events)-1].Retracted)
	assert.Len(t, decodePublished[tournamentevents.EventRetractedPayload](bus, "tournament.event.retracted"), 1)

	// Only the protected tournament_start remains eligible-checked: no-op.
	result, err = svc.RetractLastAction(ctx, tournamentevents.UndoPayload{TournamentID: testTournamentID, Author: "admin"})
	require.NoError(t, err)
	applied, ok = result.Success.(tournamentevents.UndoAppliedPayload)
	require.True(t, ok)
	assert.True(t, applied.NoOp)
}

func TestResetTournament(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	_, err := svc.RecordElimination(ctx, tournamentevents.EliminatePayload{
		TournamentID: testTournamentID, VictimID: "team-b", SlotIndex: 0, EliminatorID: "team-a", Author: "admin",
	})
	require.NoError(t, err)

	result, err := svc.ResetTournament(ctx, tournamentevents.ResetTournamentPayload{
		TournamentID: testTournamentID, Author: "admin",
	})
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	events, err := repo.ListEvents(ctx, testTournamentID)
	require.NoError(t, err)
	assert.Empty(t, events)

	stored, err := repo.GetTournament(ctx, testTournamentID)
	require.NoError(t, err)
	assert.Equal(t, tournamenttypes.StatusLobby, stored.Status)
	assert.Equal(t, DefaultPlacementPoints, stored.PlacementPoints)

	configs := decodePublished[tournamentevents.ConfigUpdatedPayload](bus, "tournament.config.updated")
	require.NotEmpty(t, configs)
	assert.True(t, configs[len(configs)-1].Reset)
}

func TestGetSnapshotReflectsLiveRound(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	_, err := svc.RecordElimination(ctx, tournamentevents.EliminatePayload{
		TournamentID: testTournamentID, VictimID: "solo-c", SlotIndex: 0, EliminatorID: "team-a", Author: "admin",
	})
	require.NoError(t, err)

	snapshot, err := svc.GetSnapshot(ctx, testTournamentID)
	require.NoError(t, err)
	assert.Equal(t, []tournamenttypes.CompetitorID{"solo-c"}, snapshot.EliminatedThisRound)
	assert.Equal(t, tournamenttypes.StatusActive, snapshot.Status)
}

func TestGetActivityNewestFirstMarksRetracted(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	_, err := svc.RecordElimination(ctx, tournamentevents.EliminatePayload{
		TournamentID: testTournamentID, VictimID: "team-b", SlotIndex: 0, EliminatorID: "team-a", Author: "admin",
	})
	require.NoError(t, err)
	_, err = svc.RetractLastAction(ctx, tournamentevents.UndoPayload{TournamentID: testTournamentID, Author: "admin"})
	require.NoError(t, err)

	entries, err := svc.GetActivity(ctx, testTournamentID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, tournamenttypes.EventEliminate, entries[0].Kind)
	assert.True(t, entries[0].Retracted)
	assert.Contains(t, entries[0].Description, "Bravo")
	assert.Contains(t, entries[0].Description, "Alpha")

	assert.Equal(t, tournamenttypes.EventTournamentStart, entries[1].Kind)
	assert.False(t, entries[1].Retracted)
}

func TestUpdateSettingsRejectsNegativeValues(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	negative := -1
	badTable := []int{10, -5}
	patches := map[string]tournamentevents.SettingsPatch{
		"current round":    {CurrentRound: &negative},
		"total rounds":     {TotalRounds: &negative},
		"kill points":      {KillPoints: &negative},
		"placement points": {PlacementPoints: &badTable},
	}

	for name, patch := range patches {
		result, err := svc.UpdateSettings(ctx, tournamentevents.UpdateSettingsPayload{
			TournamentID: testTournamentID, Patch: patch, Author: "admin",
		})
		require.NoError(t, err, name)
		require.Nil(t, result.Success, name)
		failure, ok := result.Failure.(tournamentevents.CommandRejectedPayload)
		require.True(t, ok, name)
		assert.Equal(t, ErrInvalidSettings.Error(), failure.Reason, name)
	}

	// Nothing was stored.
	stored, err := repo.GetTournament(ctx, testTournamentID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CurrentRound)
	assert.Equal(t, DefaultTotalRounds, stored.TotalRounds)
	assert.Equal(t, DefaultKillPoints, stored.KillPoints)
	assert.Equal(t, DefaultPlacementPoints, stored.PlacementPoints)
}

func TestDrawRaffle(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	result, err := svc.DrawRaffle(ctx, testTournamentID, "draw-1", 2)
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	done, ok := result.Success.(tournamentevents.RaffleDrawCompletedPayload)
	require.True(t, ok)
	assert.Len(t, done.Winners, 2)

	stored, err := repo.GetTournament(ctx, testTournamentID)
	require.NoError(t, err)
	assert.Equal(t, done.Winners, stored.RaffleWinners)
	assert.Len(t, decodePublished[tournamentevents.RaffleDrawCompletedPayload](bus, "tournament.raffle.draw_complete"), 1)
}

func TestDrawRaffleNegativeCountDrawsNobody(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	result, err := svc.DrawRaffle(ctx, testTournamentID, "draw-2", -3)
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	done, ok := result.Success.(tournamentevents.RaffleDrawCompletedPayload)
	require.True(t, ok)
	assert.Empty(t, done.Winners)

	stored, err := repo.GetTournament(ctx, testTournamentID)
	require.NoError(t, err)
	assert.Empty(t, stored.RaffleWinners)
}

func TestAdjustAndCorrectAppendEvents(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	startTournament(t, svc)

	_, err := svc.AdjustPoints(ctx, tournamentevents.AdjustPointsPayload{
		TournamentID: testTournamentID, CompetitorID: "team-a",
		EliminationPointsDelta: 3, PlacementPointsDelta: -1, Author: "admin",
	})
	require.NoError(t, err)

	_, err = svc.CorrectScore(ctx, tournamentevents.CorrectScorePayload{
		TournamentID: testTournamentID, CompetitorID: "team-b", Round: 1,
		Eliminations: 4, EliminationPoints: 4, PlacementPoints: 7, Author: "admin",
	})
	require.NoError(t, err)

	events, err := repo.ListEvents(ctx, testTournamentID)
	require.NoError(t, err)
	require.Len(t, events, 3)

	adjust := events[1]
	assert.Equal(t, tournamenttypes.EventPointsAdjust, adjust.Kind)
	assert.Equal(t, 0, adjust.Round)
	require.NotNil(t, adjust.Adjust)
	assert.Equal(t, 3, adjust.Adjust.EliminationPointsDelta)

	correction := events[2]
	assert.Equal(t, tournamenttypes.EventScoreCorrection, correction.Kind)
	require.NotNil(t, correction.Correction)
	assert.Equal(t, 1, correction.Correction.Round)
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/showdown-live/scorebot/app/shared/observability"
	"github.com/showdown-live/scorebot/app/shared/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showdown-live/scorebot/app/modules/broadcast"
	"github.com/showdown-live/scorebot/app/modules/presence"
	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

type testServer struct {
	server     *Server
	tournament *fakeTournament
	roster     *fakeRoster
	queue      *fakeQueue
	bus        *fakeBus
	tracker    *presence.Tracker
}

func newTestServer() *testServer {
	tournament := &fakeTournament{}
	roster := &fakeRoster{}
	queue := &fakeQueue{}
	bus := &fakeBus{}
	tracker := presence.NewTracker(30 * time.Second)

	server := NewServer(
		tournament, roster, tracker, queue, broadcast.NewHub(), bus,
		observability.NoOpLogger,
		100, 200,
	)
	return &testServer{
		server:     server,
		tournament: tournament,
		roster:     roster,
		queue:      queue,
		bus:        bus,
		tracker:    tracker,
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "203.0.113.7:52000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGetSnapshot(t *testing.T) {
	ts := newTestServer()
	ts.tournament.Snapshot = &tournamenttypes.Snapshot{
		TournamentID: "t1",
		Status:       tournamenttypes.StatusActive,
		CurrentRound: 2,
	}

	rec := doJSON(t, ts.server.Routes(), "GET", "/api/tournaments/t1/snapshot", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot tournamenttypes.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, "t1", snapshot.TournamentID)
	assert.Equal(t, 2, snapshot.CurrentRound)
}

func TestCommandAcceptedReturnsSuccessPayload(t *testing.T) {
	ts := newTestServer()
	ts.tournament.Result = results.OperationResult{
		Success: tournamentevents.EventAppendedPayload{
			Event: tournamenttypes.Event{ID: 7, Kind: tournamenttypes.EventEliminate},
		},
	}

	rec := doJSON(t, ts.server.Routes(), "POST", "/api/tournaments/t1/eliminations", map[string]any{
		"victim_id": "team-b", "slot_index": 0, "eliminator_id": "team-a", "author": "admin",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"RecordElimination"}, ts.tournament.Calls)

	var payload tournamentevents.EventAppendedPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, int64(7), payload.Event.ID)
}

func TestCommandRejectedReturnsConflict(t *testing.T) {
	ts := newTestServer()
	ts.tournament.Result = results.OperationResult{
		Failure: tournamentevents.CommandRejectedPayload{
			TournamentID: "t1", Command: "eliminate", Reason: "round is locked",
		},
	}

	rec := doJSON(t, ts.server.Routes(), "POST", "/api/tournaments/t1/eliminations", map[string]any{
		"victim_id": "team-b",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	var rejected tournamentevents.CommandRejectedPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rejected))
	assert.Equal(t, "round is locked", rejected.Reason)
}

func TestHeartbeatFeedsTrackerAndBus(t *testing.T) {
	ts := newTestServer()
	routes := ts.server.Routes()

	rec := doJSON(t, routes, "POST", "/api/tournaments/t1/heartbeat", map[string]string{"admin_id": "zoe"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"presence.heartbeat"}, ts.bus.subjects)

	rec = doJSON(t, routes, "GET", "/api/tournaments/t1/presence", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "zoe")
}

func TestHeartbeatRequiresAdminID(t *testing.T) {
	ts := newTestServer()
	rec := doJSON(t, ts.server.Routes(), "POST", "/api/tournaments/t1/heartbeat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleRaffleDraw(t *testing.T) {
	ts := newTestServer()
	rec := doJSON(t, ts.server.Routes(), "POST", "/api/tournaments/t1/raffle-draws", map[string]any{
		"draw_time":    time.Now().Add(time.Hour),
		"winner_count": 3,
	})
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Len(t, ts.queue.Scheduled, 1)
}

func TestScheduleRaffleDrawValidatesWinnerCount(t *testing.T) {
	ts := newTestServer()
	rec := doJSON(t, ts.server.Routes(), "POST", "/api/tournaments/t1/raffle-draws", map[string]any{
		"draw_time": time.Now().Add(time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.queue.Scheduled)
}

func TestListCompetitors(t *testing.T) {
	ts := newTestServer()
	ts.roster.Competitors = []tournamenttypes.Competitor{
		{ID: "team-a", Name: "Alpha", Players: []string{"a1", "a2"}},
	}

	rec := doJSON(t, ts.server.Routes(), "GET", "/api/tournaments/t1/competitors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alpha")
}

func TestRateLimitReturns429(t *testing.T) {
	ts := newTestServer()
	// Replace the limiter with one that only allows a single request.
	ts.server.rateLimit = NewIPRateLimiter(1, 1)
	routes := ts.server.Routes()

	first := doJSON(t, routes, "GET", "/api/tournaments/t1/snapshot", nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, routes, "GET", "/api/tournaments/t1/snapshot", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestGetStandingsChart(t *testing.T) {
	ts := newTestServer()
	ts.tournament.Snapshot = &tournamenttypes.Snapshot{
		TournamentID: "t1",
		Standings: []tournamenttypes.Standing{
			{CompetitorID: "team-a", Name: "Alpha", TotalPoints: 10},
		},
	}

	rec := doJSON(t, ts.server.Routes(), "GET", "/api/tournaments/t1/standings.png", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

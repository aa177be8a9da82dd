package broadcast

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversFrames(t *testing.T) {
	hub := NewHub()
	frames, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish([]byte(`{"round":1}`))

	select {
	case frame := <-frames:
		assert.JSONEq(t, `{"round":1}`, string(frame))
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
	}
}

func TestHubLateSubscriberGetsLatestFrame(t *testing.T) {
	hub := NewHub()
	hub.Publish([]byte(`{"round":2}`))

	frames, cancel := hub.Subscribe()
	defer cancel()

	select {
	case frame := <-frames:
		assert.JSONEq(t, `{"round":2}`, string(frame))
	case <-time.After(time.Second):
		t.Fatal("late subscriber did not receive latest frame")
	}
}

func TestHubUnsubscribeRemovesClient(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	require.Equal(t, 1, hub.ClientCount())

	cancel()
	assert.Equal(t, 0, hub.ClientCount())
	// Double cancel is safe.
	cancel()
}

func TestHubServeHTTPStreamsSSE(t *testing.T) {
	hub := NewHub()
	hub.Publish([]byte(`{"status":"active"}`))

	req := httptest.NewRequest("GET", "/stream", nil)
	ctx, cancelReq := contextWithTimeout(t, 200*time.Millisecond)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		hub.ServeHTTP(rec, req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after context cancel")
	}
	cancelReq()

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, ":\n\n"))
	assert.Contains(t, body, "event: snapshot")
	assert.Contains(t, body, `data: {"status":"active"}`)
}

package presence

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/showdown-live/scorebot/app/shared/eventbus"
)

// HeartbeatPayload is one presence ping from a connected admin client.
type HeartbeatPayload struct {
	TournamentID string    `json:"tournament_id"`
	AdminID      string    `json:"admin_id"`
	At           time.Time `json:"at"`
}

// Listener feeds the tracker from the ephemeral heartbeat subject.
type Listener struct {
	tracker *Tracker
	bus     eventbus.EventBus
	logger  *slog.Logger
}

// NewListener creates a new Listener.
func NewListener(tracker *Tracker, bus eventbus.EventBus, logger *slog.Logger) *Listener {
	return &Listener{tracker: tracker, bus: bus, logger: logger}
}

// Run consumes heartbeats until the context is canceled. Malformed
// heartbeats are dropped; presence is advisory only.
func (l *Listener) Run(ctx context.Context) error {
	messages, err := l.bus.Subscribe(ctx, eventbus.SubjectPresenceHeartbeat)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var hb HeartbeatPayload
			if err := json.Unmarshal(msg.Payload, &hb); err != nil {
				l.logger.WarnContext(ctx, "Dropping malformed heartbeat", slog.Any("error", err))
				msg.Ack()
				continue
			}
			at := hb.At
			if at.IsZero() {
				at = time.Now()
			}
			l.tracker.Heartbeat(hb.TournamentID, hb.AdminID, at)
			msg.Ack()
		}
	}
}

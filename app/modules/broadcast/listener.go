package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/showdown-live/scorebot/app/shared/eventbus"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// SnapshotSource recomputes the authoritative view. The tournament service
// satisfies it.
type SnapshotSource interface {
	GetSnapshot(ctx context.Context, tournamentID string) (*tournamenttypes.Snapshot, error)
}

// Listener recomputes and republishes the snapshot on every bus delta. This
// is the projector-per-client loop run in-process for the rendering layer.
type Listener struct {
	bus    eventbus.EventBus
	source SnapshotSource
	hub    *Hub
	logger *slog.Logger
}

// NewListener creates a new Listener.
func NewListener(bus eventbus.EventBus, source SnapshotSource, hub *Hub, logger *slog.Logger) *Listener {
	return &Listener{bus: bus, source: source, hub: hub, logger: logger}
}

// delta is the least common denominator of the fan-out payloads: just enough
// to learn which tournament changed.
type delta struct {
	TournamentID string `json:"tournament_id"`
	Event        struct {
		TournamentID string `json:"tournament_id"`
	} `json:"event"`
	Tournament struct {
		ID string `json:"id"`
	} `json:"tournament"`
}

func (d delta) tournamentID() string {
	if d.TournamentID != "" {
		return d.TournamentID
	}
	if d.Event.TournamentID != "" {
		return d.Event.TournamentID
	}
	return d.Tournament.ID
}

// Run consumes the sync subjects until the context is canceled.
func (l *Listener) Run(ctx context.Context) error {
	subjects := []string{
		eventbus.SubjectEventAppended,
		eventbus.SubjectEventRetracted,
		eventbus.SubjectConfigUpdated,
		eventbus.SubjectRosterUpdated,
	}

	var wg sync.WaitGroup
	for _, subject := range subjects {
		messages, err := l.bus.Subscribe(ctx, subject)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func(subject string, messages <-chan *message.Message) {
			defer wg.Done()
			l.consume(ctx, subject, messages)
		}(subject, messages)
	}
	wg.Wait()
	return ctx.Err()
}

func (l *Listener) consume(ctx context.Context, subject string, messages <-chan *message.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			l.handle(ctx, subject, msg)
		}
	}
}

func (l *Listener) handle(ctx context.Context, subject string, msg *message.Message) {
	defer msg.Ack()

	var d delta
	if err := json.Unmarshal(msg.Payload, &d); err != nil {
		l.logger.WarnContext(ctx, "Dropping malformed delta",
			slog.String("subject", subject),
			slog.Any("error", err),
		)
		return
	}
	id := d.tournamentID()
	if id == "" {
		return
	}

	snapshot, err := l.source.GetSnapshot(ctx, id)
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to recompute snapshot",
			slog.String("tournament_id", id),
			slog.Any("error", err),
		)
		return
	}

	frame, err := json.Marshal(snapshot)
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to encode snapshot", slog.Any("error", err))
		return
	}
	l.hub.Publish(frame)
}

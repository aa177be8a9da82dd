package eventbus

import (
	"context"
	"log/slog"
)

// Stream names. The synchronization layer runs two durable streams: one for
// tournament configuration changes and one for event-log deltas. Presence is
// ephemeral and has no stream.
const (
	ConfigStream = "tournament_config"
	EventStream  = "tournament_events"
)

// Durable subjects.
const (
	SubjectConfigUpdated  = "tournament.config.updated"
	SubjectRosterUpdated  = "tournament.roster.updated"
	SubjectEventAppended  = "tournament.event.appended"
	SubjectEventRetracted = "tournament.event.retracted"
)

// Ephemeral subjects.
const (
	SubjectPresenceHeartbeat = "presence.heartbeat"
)

// Command intake subjects, consumed by the watermill router.
const (
	SubjectCommandStart       = "tournament.command.start"
	SubjectCommandReset       = "tournament.command.reset"
	SubjectCommandEndRound    = "tournament.command.end_round"
	SubjectCommandEliminate   = "tournament.command.eliminate"
	SubjectCommandRevive      = "tournament.command.revive"
	SubjectCommandRemove      = "tournament.command.remove_competitor"
	SubjectCommandAdjust      = "tournament.command.adjust_points"
	SubjectCommandCorrect     = "tournament.command.correct_score"
	SubjectCommandUndo        = "tournament.command.undo"
	SubjectCommandSetConfig   = "tournament.command.set_config"
	SubjectCommandSetLock     = "tournament.command.set_lock"
	SubjectCommandSetRaffle   = "tournament.command.set_raffle_winners"
	SubjectCommandRejected    = "tournament.command.rejected"
	SubjectRaffleDrawComplete = "tournament.raffle.draw_complete"
)

// InitializeStreams creates the necessary streams in JetStream during application startup.
func InitializeStreams(ctx context.Context, bus EventBus, logger *slog.Logger) error {
	streams := map[string][]string{
		ConfigStream: {SubjectConfigUpdated, SubjectRosterUpdated},
		EventStream: {
			SubjectEventAppended,
			SubjectEventRetracted,
			SubjectCommandStart,
			SubjectCommandReset,
			SubjectCommandEndRound,
			SubjectCommandEliminate,
			SubjectCommandRevive,
			SubjectCommandRemove,
			SubjectCommandAdjust,
			SubjectCommandCorrect,
			SubjectCommandUndo,
			SubjectCommandSetConfig,
			SubjectCommandSetLock,
			SubjectCommandSetRaffle,
			SubjectCommandRejected,
			SubjectRaffleDrawComplete,
		},
	}

	for name, subjects := range streams {
		if err := bus.CreateStream(ctx, name, subjects); err != nil {
			logger.Error("Failed to create JetStream stream", slog.String("stream", name), slog.Any("error", err))
			return err
		}
	}
	return nil
}

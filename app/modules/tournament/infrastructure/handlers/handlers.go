// Package tournamenthandlers adapts bus command messages to the tournament
// service. Accepted writes already fan out on the config/event streams from
// inside the service, so handlers only route rejections back to the issuing
// operator; emitting the delta here as well would double-publish it.
package tournamenthandlers

import (
	"github.com/showdown-live/scorebot/app/shared/eventbus"
	"github.com/showdown-live/scorebot/app/shared/handlerwrapper"
	"github.com/showdown-live/scorebot/app/shared/results"

	tournamentservice "github.com/showdown-live/scorebot/app/modules/tournament/application"
)

// TournamentHandlers implements the Handlers interface for tournament commands.
type TournamentHandlers struct {
	service tournamentservice.Service
}

// NewTournamentHandlers creates a new TournamentHandlers instance.
func NewTournamentHandlers(service tournamentservice.Service) *TournamentHandlers {
	return &TournamentHandlers{service: service}
}

// mapRejection routes only the failure side of an operation result to the
// rejected topic.
func mapRejection(result results.OperationResult) []handlerwrapper.Result {
	if result.Failure == nil {
		return nil
	}
	return []handlerwrapper.Result{{
		Topic:   eventbus.SubjectCommandRejected,
		Payload: result.Failure,
	}}
}

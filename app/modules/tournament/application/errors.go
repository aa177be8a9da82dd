package tournamentservice

import "errors"

// Precondition violations. These travel back to the issuing operator as
// CommandRejected payloads, never as transport errors.
var (
	// ErrAlreadyActive rejects starting a tournament that is already running.
	ErrAlreadyActive = errors.New("tournament already active")
	// ErrAlreadyFinished rejects start and end-round once the final round
	// closed; a finished tournament only leaves that state through reset.
	ErrAlreadyFinished = errors.New("tournament already finished")
	// ErrRoundLocked rejects elimination edits while the round lock is on.
	ErrRoundLocked = errors.New("round is locked")
	// ErrNotActive rejects round operations while the tournament sits in the
	// lobby.
	ErrNotActive = errors.New("tournament not active")
	// ErrInvalidSettings rejects configuration patches carrying negative
	// rounds, kill points or placement table entries.
	ErrInvalidSettings = errors.New("invalid settings")
)

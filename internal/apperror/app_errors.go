package apperror

import "errors"

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrMatchFull      = errors.New("match is full")
	ErrMatchEnded     = errors.New("match is already ended")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrWrongPhase     = errors.New("operation not allowed in current phase")
	ErrAlreadyJoined  = errors.New("player already joined this match")
	ErrUnknownAction  = errors.New("unknown action")
	ErrSessionStopped = errors.New("match session is no longer running")
)

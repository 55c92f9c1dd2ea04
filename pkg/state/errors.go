package state

import "errors"

// Intents rejected with one of these errors leave the session unchanged.
var (
	ErrBusy             = errors.New("an oracle call is already in flight")
	ErrWrongPhase       = errors.New("not allowed in the current phase")
	ErrPartyDowned      = errors.New("every player is down")
	ErrGameOver         = errors.New("the game has ended")
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrUnknownChoice    = errors.New("unknown choice")
	ErrVoteClosed       = errors.New("vote is closed")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrNoEffect         = errors.New("action had no effect")
	ErrInvalidIntent    = errors.New("invalid intent")
)

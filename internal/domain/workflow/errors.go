package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a state transition is not allowed
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrGuardFailed is returned when every guard for a trigger rejects it
	ErrGuardFailed = errors.New("guard condition failed")

	// ErrTerminalState is returned when firing from DONE or FAILED
	ErrTerminalState = errors.New("state machine is in a terminal state")
)

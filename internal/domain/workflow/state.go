package workflow

// State represents a stage of the document pipeline
type State string

const (
	StateStart      State = "START"
	StateValidating State = "VALIDATING"
	StateGenerating State = "GENERATING"
	StateNotifying  State = "NOTIFYING"
	StateDone       State = "DONE"
	StateFailed     State = "FAILED"
)

var validStates = map[State]bool{
	StateStart:      true,
	StateValidating: true,
	StateGenerating: true,
	StateNotifying:  true,
	StateDone:       true,
	StateFailed:     true,
}

var terminalStates = map[State]bool{
	StateDone:   true,
	StateFailed: true,
}

// IsTerminal returns true if no further transitions leave this state
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known pipeline state
func (s State) IsValid() bool {
	return validStates[s]
}

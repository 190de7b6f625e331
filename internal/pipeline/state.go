package pipeline

// State is a pipeline lifecycle position.
type State int

const (
	StateStart State = iota
	StateExtracting
	StateTranscribing
	StateFormatting
	StateEmitted
	StateFailed
)

var stateNames = [...]string{
	StateStart:        "start",
	StateExtracting:   "extracting",
	StateTranscribing: "transcribing",
	StateFormatting:   "formatting",
	StateEmitted:      "emitted",
	StateFailed:       "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateEmitted || s == StateFailed
}

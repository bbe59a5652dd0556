package ui

// state is what the status surface is currently showing.
type state int

const (
	stateIdle state = iota
	stateRunning
	stateTerminated
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "Idle"
	case stateRunning:
		return "Running"
	case stateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

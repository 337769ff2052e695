package domain

// ChangeKind identifies which piece of state changed
type ChangeKind int

const (
	ChangeResults ChangeKind = iota
	ChangeRecents
	ChangeDetail
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeResults:
		return "results"
	case ChangeRecents:
		return "recents"
	case ChangeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// StateChange describes one applied mutation.
type StateChange struct {
	Kind  ChangeKind
	Query string // search query for results/recents changes
	ID    string // title ID for detail changes
}

// StateObserver receives a notification after each applied mutation.
// Notifications are delivered before the mutating call returns.
type StateObserver interface {
	OnStateChange(change StateChange)
}

// NoOpObserver discards notifications (for CLI/batch use).
type NoOpObserver struct{}

func (NoOpObserver) OnStateChange(StateChange) {}

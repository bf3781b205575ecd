package alert

import "time"

// Kind of condition an alert waits on.
const (
	KindKickoff  = "kickoff"
	KindFinished = "finished"
)

// Alert asks to be notified when a fixture reaches a state. Evaluation is a
// sweep over active alerts after fixture sync; a fired alert records
// TriggeredAt and goes inactive.
type Alert struct {
	ID          string
	UserID      string
	FixtureID   int64
	Kind        string
	Active      bool
	TriggeredAt *time.Time
	CreatedAt   time.Time
}

// ValidKind reports whether value names a supported alert condition.
func ValidKind(value string) bool {
	switch value {
	case KindKickoff, KindFinished:
		return true
	default:
		return false
	}
}

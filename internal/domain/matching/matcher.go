package matching

import "strings"

// TeamPair carries the home/away display names of a fixture or odds event.
type TeamPair struct {
	Home string
	Away string
}

// FindFixture returns the index of the first fixture whose normalized home
// name contains (or is contained by) the event's normalized home name, with
// the same condition holding for the away names. Returns -1 when no fixture
// qualifies; callers skip such events silently. First match in list order
// wins, there is no scoring. A fixture is not reserved once matched, so two
// events can resolve to the same fixture within one invocation.
func FindFixture(event TeamPair, fixtures []TeamPair) int {
	eventHome := Normalize(event.Home)
	eventAway := Normalize(event.Away)

	for i, fixture := range fixtures {
		if !namesOverlap(eventHome, Normalize(fixture.Home)) {
			continue
		}
		if !namesOverlap(eventAway, Normalize(fixture.Away)) {
			continue
		}
		return i
	}

	return -1
}

func namesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	return strings.Contains(a, b) || strings.Contains(b, a)
}

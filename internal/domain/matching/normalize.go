package matching

import "strings"

// clubTokens are club-form suffixes stripped during normalization. They are
// removed anywhere in the name, not only at word boundaries, to stay
// compatible with how historical snapshots were matched. Longest token first
// so "afc" is removed whole instead of leaving a dangling "a".
var clubTokens = []string{"afc", "fc", "cf", "sc", "ac"}

// Normalize reduces a team name to its comparable canonical form: lower-case,
// club tokens removed, whitespace runs collapsed to a single space, trimmed.
// Pure and total. Both the snapshot recorder and the live-odds query path go
// through this one function.
func Normalize(name string) string {
	lowered := strings.ToLower(name)
	for _, token := range clubTokens {
		lowered = strings.ReplaceAll(lowered, token, "")
	}

	return strings.Join(strings.Fields(lowered), " ")
}

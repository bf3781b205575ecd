package matching

import "testing"

func TestNormalizeFoldsClubTokensCaseAndWhitespace(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "suffix token with trailing space", input: "Manchester United FC", want: "manchester united"},
		{name: "plain lower case", input: "manchester united", want: "manchester united"},
		{name: "afc removed whole", input: "AFC Bournemouth", want: "bournemouth"},
		{name: "cf suffix", input: "Valencia CF", want: "valencia"},
		{name: "whitespace runs collapsed", input: "  Real   Madrid \t CF ", want: "real madrid"},
		{name: "token inside the name", input: "Academica", want: "ademica"},
		{name: "empty input", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tc.input); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeAgreesAcrossNameVariants(t *testing.T) {
	t.Parallel()

	if Normalize("Manchester United FC") != Normalize("manchester united") {
		t.Fatalf("expected provider and stored name variants to normalize identically")
	}
}

func TestFindFixtureMatchesByNameContainment(t *testing.T) {
	t.Parallel()

	fixtures := []TeamPair{
		{Home: "Liverpool", Away: "Everton"},
		{Home: "Arsenal", Away: "Chelsea"},
	}

	got := FindFixture(TeamPair{Home: "Arsenal FC", Away: "Chelsea FC"}, fixtures)
	if got != 1 {
		t.Fatalf("FindFixture = %d, want 1", got)
	}
}

func TestFindFixtureReturnsFirstMatchInListOrder(t *testing.T) {
	t.Parallel()

	fixtures := []TeamPair{
		{Home: "Arsenal", Away: "Chelsea"},
		{Home: "Arsenal FC", Away: "Chelsea FC"},
	}

	if got := FindFixture(TeamPair{Home: "Arsenal", Away: "Chelsea"}, fixtures); got != 0 {
		t.Fatalf("FindFixture = %d, want the first candidate", got)
	}
}

func TestFindFixtureRequiresBothSidesToOverlap(t *testing.T) {
	t.Parallel()

	fixtures := []TeamPair{{Home: "Arsenal", Away: "Chelsea"}}

	if got := FindFixture(TeamPair{Home: "Arsenal FC", Away: "Tottenham"}, fixtures); got != -1 {
		t.Fatalf("FindFixture = %d, want -1 when only the home side overlaps", got)
	}
}

func TestFindFixtureSkipsUnmatchedEvent(t *testing.T) {
	t.Parallel()

	fixtures := []TeamPair{{Home: "Arsenal", Away: "Chelsea"}}

	if got := FindFixture(TeamPair{Home: "Bayern Munich", Away: "Borussia Dortmund"}, fixtures); got != -1 {
		t.Fatalf("FindFixture = %d, want -1 for a fixture-less event", got)
	}
}

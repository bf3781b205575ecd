package country

import "testing"

func TestDeriveID_Deterministic(t *testing.T) {
	t.Parallel()

	first := DeriveID("England")
	second := DeriveID("England")
	if first != second {
		t.Fatalf("DeriveID is not stable: %d != %d", first, second)
	}
}

func TestDeriveID_NormalizesCaseAndWhitespace(t *testing.T) {
	t.Parallel()

	base := DeriveID("England")
	for _, variant := range []string{"england", "ENGLAND", "  England  ", "\tengland\n"} {
		if got := DeriveID(variant); got != base {
			t.Fatalf("DeriveID(%q) = %d, want %d", variant, got, base)
		}
	}
}

func TestDeriveID_FitsBigintAndDistinguishesNames(t *testing.T) {
	t.Parallel()

	names := []string{"England", "Spain", "Germany", "Italy", "France", ""}
	seen := make(map[int64]string, len(names))
	for _, name := range names {
		id := DeriveID(name)
		if id < 0 {
			t.Fatalf("DeriveID(%q) = %d, want non-negative", name, id)
		}
		if prev, ok := seen[id]; ok {
			t.Fatalf("DeriveID collision: %q and %q both map to %d", prev, name, id)
		}
		seen[id] = name
	}
}

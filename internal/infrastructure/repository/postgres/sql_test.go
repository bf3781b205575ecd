package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches no rows", func(t *testing.T) {
		if !isNotFound(sql.ErrNoRows) {
			t.Fatalf("expected true for sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fmt.Errorf("pq: relation fixtures does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestOptionalString(t *testing.T) {
	t.Run("returns nil for blank", func(t *testing.T) {
		if got := optionalString("   "); got != nil {
			t.Fatalf("expected nil, got %q", *got)
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		got := optionalString("  consensus  ")
		if got == nil || *got != "consensus" {
			t.Fatalf("unexpected value: %v", got)
		}
	})
}

package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestAssignments(t *testing.T) {
	set := newAssignments("row-1")
	set.add("name", "Apollo")
	set.add("description", "Moon")

	if got, want := set.clause(), "name = $2, description = $3, updated_at = NOW()"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if len(set.args) != 3 || set.args[0] != "row-1" || set.args[2] != "Moon" {
		t.Fatalf("unexpected args: %v", set.args)
	}
}

func TestAssignments_Empty(t *testing.T) {
	if got := newAssignments("x").clause(); got != "updated_at = NOW()" {
		t.Fatalf("unexpected clause: %q", got)
	}
}

func TestPgCode(t *testing.T) {
	wrapped := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: codeUniqueViolation})
	if pgCode(wrapped) != codeUniqueViolation {
		t.Fatalf("expected unique violation code")
	}
	if pgCode(errors.New("plain")) != "" {
		t.Fatalf("expected empty code for non-postgres errors")
	}
}

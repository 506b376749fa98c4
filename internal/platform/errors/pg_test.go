package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	for state, want := range map[string]ErrorCode{
		"23505": ErrorCodeDuplicateKey,
		"23503": ErrorCodeInvalidArgument,
		"23514": ErrorCodeValidation,
		"22P02": ErrorCodeInvalidArgument,
		"55P03": ErrorCodeUnavailable,
		"57014": ErrorCodeUnavailable,
		"40P01": ErrorCodeDB,
		"XX000": ErrorCodeDB,
	} {
		err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: state})
		got, ok := DBErrorCode(err)
		if !ok || got != want {
			t.Errorf("DBErrorCode(%s) = %d,%v want %d", state, got, ok, want)
		}
	}

	if _, ok := DBErrorCode(stderrs.New("dial tcp: refused")); ok {
		t.Fatal("non-pg error should report !ok")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "search failed") != nil {
		t.Fatal("nil should stay nil")
	}

	err := FromPostgres(&pgconn.PgError{Code: "55P03", Message: "could not obtain lock"}, "channel search failed")
	if CodeOf(err) != ErrorCodeUnavailable {
		t.Fatalf("code = %d", CodeOf(err))
	}
	if state, ok := SQLState(err); !ok || state != "55P03" {
		t.Fatalf("SQLState = %q,%v", state, ok)
	}
	if WireFrom(err).Message != "channel search failed" {
		t.Fatalf("wire = %+v", WireFrom(err))
	}

	err = FromPostgres(stderrs.New("conn closed"), "search failed")
	if CodeOf(err) != ErrorCodeDB {
		t.Fatalf("code = %d", CodeOf(err))
	}
}

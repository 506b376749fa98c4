package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlStateCodes maps the SQLSTATEs the stores can raise onto project codes
var sqlStateCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"55P03": ErrorCodeUnavailable,     // lock_not_available
	"57014": ErrorCodeUnavailable,     // query_canceled, statement or lock timeout
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
}

// SQLState returns the Postgres SQLSTATE carried anywhere in err's chain
func SQLState(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}

// DBErrorCode maps a Postgres error to an ErrorCode, !ok when err carries no PgError
func DBErrorCode(err error) (ErrorCode, bool) {
	state, ok := SQLState(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, known := sqlStateCodes[state]; known {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with a mapped ErrorCode and message, nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgCodes maps the SQLSTATEs the ledger can hit, anything else is ErrorCodeDB
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
	"53300": ErrorCodeUnavailable,     // too_many_connections
}

// DBErrorCode classifies a *pgconn.PgError anywhere in err's chain
// ok is false when there is none
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}
	if c, found := pgCodes[pgErr.Code]; found {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a database error with msg and its mapped code
// the violated column becomes the error field when postgres reports one
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, msg)
	}
	out := Wrap(err, code, msg)

	var pgErr *pgconn.PgError
	_ = stderrs.As(err, &pgErr)
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		out = WithField(out, col)
	}
	return out
}

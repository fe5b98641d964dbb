package errx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers for a missing table or column.
const (
	mysqlErrNoSuchTable  = 1146
	mysqlErrBadFieldName = 1054
)

// WrapDB maps database errors to AppError. Schema mismatches keep their own
// message so callers can tell them apart from transient failures.
func WrapDB(err error) error {
	if err == nil {
		return nil
	}

	if IsSchemaError(err) {
		return New(err, http.StatusInternalServerError, SchemaErrorMessage)
	}

	return New(err, http.StatusBadGateway, DBErrorMessage)
}

// IsSchemaError reports whether err is a missing-table or missing-column
// failure. Such failures are permanent and must not be retried.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrNoSuchTable || myErr.Number == mysqlErrBadFieldName
	}

	// SQLite (used by the test databases) reports schema problems only
	// through the error text.
	msg := err.Error()
	return strings.Contains(msg, "no such table") || strings.Contains(msg, "no such column")
}

package repository

import (
	"errors"
	"strings"

	"gutly/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE undefined_column
const pgUndefinedColumn = "42703"

var ErrMealNotFound = errors.New("meal not found")

// IsUndefinedColumn reports whether err was caused by the database not
// knowing one of the optional meal columns, i.e. a schema that is behind the
// application.
func IsUndefinedColumn(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedColumn
	}

	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "does not exist") && !strings.Contains(msg, "could not find") {
		return false
	}
	for _, col := range models.OptionalMealColumns {
		if strings.Contains(msg, col) {
			return true
		}
	}
	return false
}

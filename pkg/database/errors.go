package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"zoo_management/pkg/apperror"
)

// Classify tags a store error with an apperror kind. message is what the
// client will see. Errors that already carry a kind are returned unchanged.
func Classify(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Wrap(kindOf(err), err, message)
}

func kindOf(err error) apperror.Kind {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.KindConflict
	case errors.Is(err, gorm.ErrInvalidData), errors.Is(err, gorm.ErrInvalidField):
		return apperror.KindValidation
	case isUnavailable(err):
		return apperror.KindStoreUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgKind(pgErr.Code)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return sqliteKind(liteErr)
	}
	return apperror.KindInternal
}

// pgKind maps a SQLSTATE to a kind.
func pgKind(code string) apperror.Kind {
	switch {
	case code == "23505", code == "23503":
		return apperror.KindConflict
	case code == "23502", code == "23514", strings.HasPrefix(code, "22"):
		return apperror.KindValidation
	case strings.HasPrefix(code, "08"), code == "57P01", code == "57P03", code == "53300":
		return apperror.KindStoreUnavailable
	default:
		return apperror.KindInternal
	}
}

func sqliteKind(e sqlite3.Error) apperror.Kind {
	switch e.Code {
	case sqlite3.ErrConstraint:
		switch e.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintForeignKey:
			return apperror.KindConflict
		case sqlite3.ErrConstraintNotNull, sqlite3.ErrConstraintCheck:
			return apperror.KindValidation
		}
		return apperror.KindConflict
	case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr:
		return apperror.KindStoreUnavailable
	case sqlite3.ErrMismatch, sqlite3.ErrTooBig:
		return apperror.KindValidation
	default:
		return apperror.KindInternal
	}
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

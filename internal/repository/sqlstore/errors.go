package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"langportal/internal/domain"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// wrapErr classifies a driver error and tags it with the failed operation.
// sql.ErrNoRows is mapped to domain.ErrNotFound.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return &domain.StorageError{Kind: classify(err), Op: op, Err: err}
}

// scanErr marks a row that could not be decoded as a structural failure
func scanErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &domain.StorageError{Kind: domain.ErrStorageCorrupt, Op: op, Err: err}
}

func classify(err error) error {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return domain.ErrStorageUnavailable
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "53", "57":
			// connection exception, insufficient resources, operator intervention
			return domain.ErrStorageUnavailable
		case "23":
			return domain.ErrConstraintViolation
		default:
			return domain.ErrStorageCorrupt
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN,
			sqlite3.SQLITE_IOERR, sqlite3.SQLITE_FULL, sqlite3.SQLITE_PERM,
			sqlite3.SQLITE_READONLY:
			return domain.ErrStorageUnavailable
		case sqlite3.SQLITE_CONSTRAINT:
			return domain.ErrConstraintViolation
		default:
			return domain.ErrStorageCorrupt
		}
	}

	// network failures, "sql: database is closed" and anything unrecognised
	return domain.ErrStorageUnavailable
}

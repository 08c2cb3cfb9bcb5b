package repository

import (
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Astemirdum/hotel-reservation/reservation/internal/errs"
)

// check constraints declared by the migrations
var checkConstraints = map[string]error{
	"reservation_name_check":  errs.ErrName,
	"reservation_room_check":  errs.ErrRoomID,
	"reservation_dates_check": errs.ErrDateOrder,
}

// translate maps constraint violations raised by the database onto domain errors.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errs.ErrRoomNotAvailable
		case pgerrcode.CheckViolation:
			if domainErr, ok := checkConstraints[pgErr.ConstraintName]; ok {
				return domainErr
			}
		}
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return errs.ErrRoomNotAvailable
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			// sqlite reports the name only in the message: "CHECK constraint failed: <name>"
			for name, domainErr := range checkConstraints {
				if strings.Contains(liteErr.Error(), name) {
					return domainErr
				}
			}
		}
	}
	return errors.Wrap(err, "db.Exec")
}

// Package sqlxrepos implements the core repositories on Postgres via sqlx.
//
// Dates and times are selected back as text (`::text`) so the zero-padded
// boundary formats survive the round trip untouched. Every call is bounded by
// the configured timeout; unreachable-store and timed-out calls surface as
// transient errors. The clear-all-then-set writes (active calendar, current
// term) run inside one transaction, closing the two-step race window the
// pattern otherwise carries.
package sqlxrepos

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/DaddyBoye/School-Management-sub001/core"
)

type repository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08" // connection exception
	}
	return false
}

// wrapErr maps sql.ErrNoRows to the entity's not-found error and store
// unavailability to a transient error; anything else is wrapped as-is.
func wrapErr(err error, notFound error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return notFound
	case isTransient(err):
		return core.WrapError(err, core.KindTransient, msg)
	default:
		return errors.Wrap(err, msg)
	}
}

// Package sqlxrepos implements the repositories over postgres with sqlx.
package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// execer is satisfied by *sqlx.DB and *sqlx.Tx.
type execer interface {
	sqlx.ExtContext
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

func deleted(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "reading affected rows")
	}
	return n > 0, nil
}

// completedAt is now when completed, NULL otherwise.
func completedAt(completed bool, now time.Time) null.Time {
	if completed {
		return null.TimeFrom(now)
	}
	return null.Time{}
}

func utc(t time.Time) time.Time { return t.UTC() }

func utcPtr(t null.Time) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

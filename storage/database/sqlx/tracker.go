package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/hustle/core/tracker"
)

const activityCols = `id, user_id, type, hours, income, description, date, created_at`

type activityRow struct {
	ID          int         `db:"id"`
	UserID      int         `db:"user_id"`
	Type        string      `db:"type"`
	Hours       float64     `db:"hours"`
	Income      float64     `db:"income"`
	Description null.String `db:"description"`
	Date        time.Time   `db:"date"`
	CreatedAt   time.Time   `db:"created_at"`
}

func newActivityRow(a tracker.Activity) activityRow {
	return activityRow{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        a.Type,
		Hours:       a.Hours,
		Income:      a.Income,
		Description: null.StringFromPtr(a.Description),
		Date:        a.Date,
		CreatedAt:   a.CreatedAt,
	}
}

func (r activityRow) toActivity() tracker.Activity {
	return tracker.Activity{
		ID:          r.ID,
		UserID:      r.UserID,
		Type:        r.Type,
		Hours:       r.Hours,
		Income:      r.Income,
		Description: r.Description.Ptr(),
		Date:        r.Date,
		CreatedAt:   utc(r.CreatedAt),
	}
}

type activityRepository struct {
	db *sqlx.DB
}

var _ tracker.Repository = (*activityRepository)(nil)

func NewActivityRepository(db *sqlx.DB) tracker.Repository {
	return &activityRepository{db: db}
}

func (repo *activityRepository) many(ctx context.Context, query string, args ...interface{}) ([]tracker.Activity, error) {
	var rows []activityRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "listing activities")
	}
	acts := make([]tracker.Activity, 0, len(rows))
	for _, r := range rows {
		acts = append(acts, r.toActivity())
	}
	return acts, nil
}

func (repo *activityRepository) List(ctx context.Context) ([]tracker.Activity, error) {
	return repo.many(ctx, `SELECT `+activityCols+` FROM activities ORDER BY id`)
}

func (repo *activityRepository) Get(ctx context.Context, id int) (tracker.Activity, error) {
	var row activityRow
	if err := repo.db.GetContext(ctx, &row, `SELECT `+activityCols+` FROM activities WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return tracker.Activity{}, tracker.ErrNotFound
		}
		return tracker.Activity{}, errors.Wrap(err, "querying activity")
	}
	return row.toActivity(), nil
}

func (repo *activityRepository) Create(ctx context.Context, act tracker.Activity) (tracker.Activity, error) {
	r := newActivityRow(act)
	q := `INSERT INTO activities (user_id, type, hours, income, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + activityCols

	var row activityRow
	if err := repo.db.GetContext(ctx, &row, q, r.UserID, r.Type, r.Hours, r.Income, r.Description, r.Date, r.CreatedAt); err != nil {
		return tracker.Activity{}, errors.Wrap(err, "creating activity")
	}
	return row.toActivity(), nil
}

func (repo *activityRepository) ListForUser(ctx context.Context, userID int) ([]tracker.Activity, error) {
	return repo.many(ctx, `SELECT `+activityCols+` FROM activities WHERE user_id = $1 ORDER BY id`, userID)
}

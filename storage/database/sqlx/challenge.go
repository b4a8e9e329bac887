package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/hustle/core/challenge"
)

const challengeCols = `id, user_id, day, completed, completed_at, created_at`

type challengeRow struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	Day         int       `db:"day"`
	Completed   bool      `db:"completed"`
	CompletedAt null.Time `db:"completed_at"`
	CreatedAt   time.Time `db:"created_at"`
}

func newChallengeRow(p challenge.Progress) challengeRow {
	return challengeRow{
		ID:          p.ID,
		UserID:      p.UserID,
		Day:         p.Day,
		Completed:   p.Completed,
		CompletedAt: null.TimeFromPtr(p.CompletedAt),
		CreatedAt:   p.CreatedAt,
	}
}

func (r challengeRow) toProgress() challenge.Progress {
	return challenge.Progress{
		ID:          r.ID,
		UserID:      r.UserID,
		Day:         r.Day,
		Completed:   r.Completed,
		CompletedAt: utcPtr(r.CompletedAt),
		CreatedAt:   utc(r.CreatedAt),
	}
}

type challengeRepository struct {
	db *sqlx.DB
}

var _ challenge.Repository = (*challengeRepository)(nil)

func NewChallengeRepository(db *sqlx.DB) challenge.Repository {
	return &challengeRepository{db: db}
}

func (repo *challengeRepository) many(ctx context.Context, query string, args ...interface{}) ([]challenge.Progress, error) {
	var rows []challengeRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "listing challenge progress")
	}
	prgs := make([]challenge.Progress, 0, len(rows))
	for _, r := range rows {
		prgs = append(prgs, r.toProgress())
	}
	return prgs, nil
}

func (repo *challengeRepository) List(ctx context.Context) ([]challenge.Progress, error) {
	return repo.many(ctx, `SELECT `+challengeCols+` FROM challenge_progress ORDER BY id`)
}

func (repo *challengeRepository) Get(ctx context.Context, id int) (challenge.Progress, error) {
	var row challengeRow
	if err := repo.db.GetContext(ctx, &row, `SELECT `+challengeCols+` FROM challenge_progress WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return challenge.Progress{}, challenge.ErrNotFound
		}
		return challenge.Progress{}, errors.Wrap(err, "querying challenge progress")
	}
	return row.toProgress(), nil
}

func (repo *challengeRepository) ListForUser(ctx context.Context, userID int) ([]challenge.Progress, error) {
	return repo.many(ctx, `SELECT `+challengeCols+` FROM challenge_progress WHERE user_id = $1 ORDER BY id`, userID)
}

func (repo *challengeRepository) UpsertDay(ctx context.Context, userID, day int, completed bool) (challenge.Progress, error) {
	now := time.Now().UTC()
	q := `INSERT INTO challenge_progress (user_id, day, completed, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, day) DO UPDATE
			SET completed = EXCLUDED.completed,
				completed_at = CASE WHEN challenge_progress.completed AND EXCLUDED.completed
					THEN challenge_progress.completed_at ELSE EXCLUDED.completed_at END
		RETURNING ` + challengeCols

	var row challengeRow
	if err := repo.db.GetContext(ctx, &row, q, userID, day, completed, completedAt(completed, now), now); err != nil {
		return challenge.Progress{}, errors.Wrap(err, "upserting challenge day")
	}
	return row.toProgress(), nil
}

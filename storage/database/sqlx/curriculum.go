package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/curriculum"
)

const (
	moduleCols   = `id, title, description, content, tier, order_index, status, estimated_minutes, created_at`
	progressCols = `id, user_id, module_id, completed, progress, completed_at, created_at`
)

type moduleRow struct {
	ID               int       `db:"id"`
	Title            string    `db:"title"`
	Description      string    `db:"description"`
	Content          string    `db:"content"`
	Tier             string    `db:"tier"`
	OrderIndex       int       `db:"order_index"`
	Status           string    `db:"status"`
	EstimatedMinutes int       `db:"estimated_minutes"`
	CreatedAt        time.Time `db:"created_at"`
}

func newModuleRow(m curriculum.Module) moduleRow {
	return moduleRow{
		ID:               m.ID,
		Title:            m.Title,
		Description:      m.Description,
		Content:          m.Content,
		Tier:             string(m.Tier),
		OrderIndex:       m.OrderIndex,
		Status:           m.Status,
		EstimatedMinutes: m.EstimatedMinutes,
		CreatedAt:        m.CreatedAt,
	}
}

func (r moduleRow) toModule() curriculum.Module {
	return curriculum.Module{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		Content:          r.Content,
		Tier:             core.Tier(r.Tier),
		OrderIndex:       r.OrderIndex,
		Status:           r.Status,
		EstimatedMinutes: r.EstimatedMinutes,
		CreatedAt:        utc(r.CreatedAt),
	}
}

type moduleRepository struct {
	db *sqlx.DB
}

var _ curriculum.ModuleRepository = (*moduleRepository)(nil)

func NewModuleRepository(db *sqlx.DB) curriculum.ModuleRepository {
	return &moduleRepository{db: db}
}

func (repo *moduleRepository) one(ctx context.Context, query string, args ...interface{}) (curriculum.Module, error) {
	var row moduleRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return curriculum.Module{}, curriculum.ErrModuleNotFound
		}
		return curriculum.Module{}, errors.Wrap(err, "querying module")
	}
	return row.toModule(), nil
}

func (repo *moduleRepository) List(ctx context.Context) ([]curriculum.Module, error) {
	var rows []moduleRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+moduleCols+` FROM modules ORDER BY order_index, id`); err != nil {
		return nil, errors.Wrap(err, "listing modules")
	}
	mods := make([]curriculum.Module, 0, len(rows))
	for _, r := range rows {
		mods = append(mods, r.toModule())
	}
	return mods, nil
}

func (repo *moduleRepository) Get(ctx context.Context, id int) (curriculum.Module, error) {
	return repo.one(ctx, `SELECT `+moduleCols+` FROM modules WHERE id = $1`, id)
}

func (repo *moduleRepository) Create(ctx context.Context, mod curriculum.Module) (curriculum.Module, error) {
	r := newModuleRow(mod)
	q := `INSERT INTO modules (title, description, content, tier, order_index, status, estimated_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING ` + moduleCols
	return repo.one(ctx, q, r.Title, r.Description, r.Content, r.Tier, r.OrderIndex, r.Status, r.EstimatedMinutes, r.CreatedAt)
}

func (repo *moduleRepository) Update(ctx context.Context, mod curriculum.Module) (curriculum.Module, error) {
	r := newModuleRow(mod)
	q := `UPDATE modules SET title = $2, description = $3, content = $4, tier = $5, order_index = $6,
			status = $7, estimated_minutes = $8
		WHERE id = $1 RETURNING ` + moduleCols
	return repo.one(ctx, q, r.ID, r.Title, r.Description, r.Content, r.Tier, r.OrderIndex, r.Status, r.EstimatedMinutes)
}

func (repo *moduleRepository) Delete(ctx context.Context, id int) (bool, error) {
	return deleted(repo.db.ExecContext(ctx, `DELETE FROM modules WHERE id = $1`, id))
}

type progressRow struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	ModuleID    int       `db:"module_id"`
	Completed   bool      `db:"completed"`
	Progress    int       `db:"progress"`
	CompletedAt null.Time `db:"completed_at"`
	CreatedAt   time.Time `db:"created_at"`
}

func newProgressRow(p curriculum.UserProgress) progressRow {
	return progressRow{
		ID:          p.ID,
		UserID:      p.UserID,
		ModuleID:    p.ModuleID,
		Completed:   p.Completed,
		Progress:    p.Progress,
		CompletedAt: null.TimeFromPtr(p.CompletedAt),
		CreatedAt:   p.CreatedAt,
	}
}

func (r progressRow) toProgress() curriculum.UserProgress {
	return curriculum.UserProgress{
		ID:          r.ID,
		UserID:      r.UserID,
		ModuleID:    r.ModuleID,
		Completed:   r.Completed,
		Progress:    r.Progress,
		CompletedAt: utcPtr(r.CompletedAt),
		CreatedAt:   utc(r.CreatedAt),
	}
}

type progressRepository struct {
	db *sqlx.DB
}

var _ curriculum.ProgressRepository = (*progressRepository)(nil)

func NewProgressRepository(db *sqlx.DB) curriculum.ProgressRepository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) many(ctx context.Context, query string, args ...interface{}) ([]curriculum.UserProgress, error) {
	var rows []progressRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "listing progress")
	}
	prgs := make([]curriculum.UserProgress, 0, len(rows))
	for _, r := range rows {
		prgs = append(prgs, r.toProgress())
	}
	return prgs, nil
}

func (repo *progressRepository) List(ctx context.Context) ([]curriculum.UserProgress, error) {
	return repo.many(ctx, `SELECT `+progressCols+` FROM user_progress ORDER BY id`)
}

func (repo *progressRepository) Get(ctx context.Context, id int) (curriculum.UserProgress, error) {
	var row progressRow
	if err := repo.db.GetContext(ctx, &row, `SELECT `+progressCols+` FROM user_progress WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return curriculum.UserProgress{}, curriculum.ErrProgressNotFound
		}
		return curriculum.UserProgress{}, errors.Wrap(err, "querying progress")
	}
	return row.toProgress(), nil
}

func (repo *progressRepository) ListForUser(ctx context.Context, userID int) ([]curriculum.UserProgress, error) {
	return repo.many(ctx, `SELECT `+progressCols+` FROM user_progress WHERE user_id = $1 ORDER BY id`, userID)
}

func (repo *progressRepository) Upsert(ctx context.Context, userID, moduleID int, completed bool, progress int) (curriculum.UserProgress, error) {
	now := time.Now().UTC()
	q := `INSERT INTO user_progress (user_id, module_id, completed, progress, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, module_id) DO UPDATE
			SET completed = EXCLUDED.completed, progress = EXCLUDED.progress,
				completed_at = CASE WHEN user_progress.completed AND EXCLUDED.completed
					THEN user_progress.completed_at ELSE EXCLUDED.completed_at END
		RETURNING ` + progressCols

	var row progressRow
	err := repo.db.GetContext(ctx, &row, q, userID, moduleID, completed, progress, completedAt(completed, now), now)
	if err != nil {
		return curriculum.UserProgress{}, errors.Wrap(err, "upserting progress")
	}
	return row.toProgress(), nil
}

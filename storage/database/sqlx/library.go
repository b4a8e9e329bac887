package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/library"
)

const templateCols = `id, title, description, category, tier, download_url, file_type, created_at`

type templateRow struct {
	ID          int         `db:"id"`
	Title       string      `db:"title"`
	Description string      `db:"description"`
	Category    string      `db:"category"`
	Tier        string      `db:"tier"`
	DownloadURL null.String `db:"download_url"`
	FileType    string      `db:"file_type"`
	CreatedAt   time.Time   `db:"created_at"`
}

func newTemplateRow(t library.Template) templateRow {
	return templateRow{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Tier:        string(t.Tier),
		DownloadURL: null.StringFromPtr(t.DownloadURL),
		FileType:    t.FileType,
		CreatedAt:   t.CreatedAt,
	}
}

func (r templateRow) toTemplate() library.Template {
	return library.Template{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Tier:        core.Tier(r.Tier),
		DownloadURL: r.DownloadURL.Ptr(),
		FileType:    r.FileType,
		CreatedAt:   utc(r.CreatedAt),
	}
}

type templateRepository struct {
	db *sqlx.DB
}

var _ library.Repository = (*templateRepository)(nil)

func NewTemplateRepository(db *sqlx.DB) library.Repository {
	return &templateRepository{db: db}
}

func (repo *templateRepository) one(ctx context.Context, query string, args ...interface{}) (library.Template, error) {
	var row templateRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return library.Template{}, library.ErrNotFound
		}
		return library.Template{}, errors.Wrap(err, "querying template")
	}
	return row.toTemplate(), nil
}

func (repo *templateRepository) List(ctx context.Context) ([]library.Template, error) {
	var rows []templateRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+templateCols+` FROM templates ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "listing templates")
	}
	tmpls := make([]library.Template, 0, len(rows))
	for _, r := range rows {
		tmpls = append(tmpls, r.toTemplate())
	}
	return tmpls, nil
}

func (repo *templateRepository) Get(ctx context.Context, id int) (library.Template, error) {
	return repo.one(ctx, `SELECT `+templateCols+` FROM templates WHERE id = $1`, id)
}

func (repo *templateRepository) Create(ctx context.Context, tmpl library.Template) (library.Template, error) {
	r := newTemplateRow(tmpl)
	q := `INSERT INTO templates (title, description, category, tier, download_url, file_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + templateCols
	return repo.one(ctx, q, r.Title, r.Description, r.Category, r.Tier, r.DownloadURL, r.FileType, r.CreatedAt)
}

func (repo *templateRepository) Update(ctx context.Context, tmpl library.Template) (library.Template, error) {
	r := newTemplateRow(tmpl)
	q := `UPDATE templates SET title = $2, description = $3, category = $4, tier = $5, download_url = $6, file_type = $7
		WHERE id = $1 RETURNING ` + templateCols
	return repo.one(ctx, q, r.ID, r.Title, r.Description, r.Category, r.Tier, r.DownloadURL, r.FileType)
}

func (repo *templateRepository) Delete(ctx context.Context, id int) (bool, error) {
	return deleted(repo.db.ExecContext(ctx, `DELETE FROM templates WHERE id = $1`, id))
}

package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/hustle/storage/database/seed"
)

var seedInserts = []struct {
	table string
	query string
}{
	{"users", `INSERT INTO users (` + userCols + `) VALUES
		(:id, :username, :email, :password_hash, :tier, :stripe_customer_id, :stripe_subscription_id, :created_at)`},
	{"modules", `INSERT INTO modules (` + moduleCols + `) VALUES
		(:id, :title, :description, :content, :tier, :order_index, :status, :estimated_minutes, :created_at)`},
	{"templates", `INSERT INTO templates (` + templateCols + `) VALUES
		(:id, :title, :description, :category, :tier, :download_url, :file_type, :created_at)`},
	{"user_progress", `INSERT INTO user_progress (` + progressCols + `) VALUES
		(:id, :user_id, :module_id, :completed, :progress, :completed_at, :created_at)`},
	{"activities", `INSERT INTO activities (` + activityCols + `) VALUES
		(:id, :user_id, :type, :hours, :income, :description, :date, :created_at)`},
	{"challenge_progress", `INSERT INTO challenge_progress (` + challengeCols + `) VALUES
		(:id, :user_id, :day, :completed, :completed_at, :created_at)`},
}

// Seed loads the demo dataset into an empty, migrated database and moves the id sequences past it.
func Seed(ctx context.Context, db *sqlx.DB) error {
	data, err := seed.New(time.Now())
	if err != nil {
		return err
	}

	rows := map[string][]interface{}{}
	for _, u := range data.Users {
		rows["users"] = append(rows["users"], newUserRow(u))
	}
	for _, m := range data.Modules {
		rows["modules"] = append(rows["modules"], newModuleRow(m))
	}
	for _, t := range data.Templates {
		rows["templates"] = append(rows["templates"], newTemplateRow(t))
	}
	for _, p := range data.Progress {
		rows["user_progress"] = append(rows["user_progress"], newProgressRow(p))
	}
	for _, a := range data.Activities {
		rows["activities"] = append(rows["activities"], newActivityRow(a))
	}
	for _, c := range data.Challenge {
		rows["challenge_progress"] = append(rows["challenge_progress"], newChallengeRow(c))
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning seed transaction")
	}
	if err = seedTx(ctx, tx, rows); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing seed")
}

func seedTx(ctx context.Context, tx execer, rows map[string][]interface{}) error {
	for _, ins := range seedInserts {
		for _, row := range rows[ins.table] {
			if _, err := tx.NamedExecContext(ctx, ins.query, row); err != nil {
				return errors.Wrapf(err, "seeding %s", ins.table)
			}
		}
		q := `SELECT setval(pg_get_serial_sequence('` + ins.table + `', 'id'), COALESCE(MAX(id), 1)) FROM ` + ins.table
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return errors.Wrapf(err, "resetting %s id sequence", ins.table)
		}
	}
	return nil
}

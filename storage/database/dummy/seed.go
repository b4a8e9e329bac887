package dummydb

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/hustle/storage/database/seed"
)

// Seed loads the demo dataset, keeping its IDs. Each table's counter continues after the seeded rows.
// Seeding a non-empty table fails.
func Seed(_ context.Context, db *DB) error {
	data, err := seed.New(time.Now())
	if err != nil {
		return err
	}

	db.user.Lock()
	defer db.user.Unlock()
	db.module.Lock()
	defer db.module.Unlock()
	db.template.Lock()
	defer db.template.Unlock()
	db.progress.Lock()
	defer db.progress.Unlock()
	db.activity.Lock()
	defer db.activity.Unlock()
	db.challenge.Lock()
	defer db.challenge.Unlock()

	if len(db.user.table) > 0 || len(db.module.table) > 0 || len(db.template.table) > 0 {
		return errors.New("seeding a non-empty database")
	}

	for i := range data.Users {
		row := data.Users[i]
		db.user.table[row.ID] = &row
		db.user.pkCount = maxInt(db.user.pkCount, row.ID)
	}
	for i := range data.Modules {
		row := data.Modules[i]
		db.module.table[row.ID] = &row
		db.module.pkCount = maxInt(db.module.pkCount, row.ID)
	}
	for i := range data.Templates {
		row := data.Templates[i]
		db.template.table[row.ID] = &row
		db.template.pkCount = maxInt(db.template.pkCount, row.ID)
	}
	for i := range data.Progress {
		row := data.Progress[i]
		db.progress.table[row.ID] = &row
		db.progress.pkCount = maxInt(db.progress.pkCount, row.ID)
	}
	for i := range data.Activities {
		row := data.Activities[i]
		db.activity.table[row.ID] = &row
		db.activity.pkCount = maxInt(db.activity.pkCount, row.ID)
	}
	for i := range data.Challenge {
		row := data.Challenge[i]
		db.challenge.table[row.ID] = &row
		db.challenge.pkCount = maxInt(db.challenge.pkCount, row.ID)
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

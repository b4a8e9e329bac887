// Package dummydb is the in-memory store. Each table guards its rows with its own lock
// and hands out copies, never pointers into the table.
package dummydb

import (
	"sync"

	"github.com/trezcool/hustle/core/challenge"
	"github.com/trezcool/hustle/core/curriculum"
	"github.com/trezcool/hustle/core/library"
	"github.com/trezcool/hustle/core/tracker"
	"github.com/trezcool/hustle/core/user"
)

type (
	DB struct {
		user      *userTable
		module    *moduleTable
		template  *templateTable
		progress  *progressTable
		activity  *activityTable
		challenge *challengeTable
	}

	userTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*user.User
	}

	moduleTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*curriculum.Module
	}

	templateTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*library.Template
	}

	progressTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*curriculum.UserProgress
	}

	activityTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*tracker.Activity
	}

	challengeTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*challenge.Progress
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:      &userTable{table: make(map[int]*user.User)},
		module:    &moduleTable{table: make(map[int]*curriculum.Module)},
		template:  &templateTable{table: make(map[int]*library.Template)},
		progress:  &progressTable{table: make(map[int]*curriculum.UserProgress)},
		activity:  &activityTable{table: make(map[int]*tracker.Activity)},
		challenge: &challengeTable{table: make(map[int]*challenge.Progress)},
	}
	return db, nil
}

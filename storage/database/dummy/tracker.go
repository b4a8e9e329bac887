package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/hustle/core/tracker"
)

type activityRepository struct {
	db *activityTable
}

var _ tracker.Repository = (*activityRepository)(nil)

func NewActivityRepository(db *DB) tracker.Repository {
	return &activityRepository{db: db.activity}
}

func (repo *activityRepository) query(keep func(a *tracker.Activity) bool) []tracker.Activity {
	acts := make([]tracker.Activity, 0)
	for _, a := range repo.db.table {
		if keep == nil || keep(a) {
			acts = append(acts, *a)
		}
	}
	sort.Slice(acts, func(i, j int) bool { return acts[i].ID < acts[j].ID })
	return acts
}

func (repo *activityRepository) List(_ context.Context) ([]tracker.Activity, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(nil), nil
}

func (repo *activityRepository) Get(_ context.Context, id int) (tracker.Activity, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return *a, nil
	}
	return tracker.Activity{}, tracker.ErrNotFound
}

func (repo *activityRepository) Create(_ context.Context, act tracker.Activity) (tracker.Activity, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	act.ID = repo.db.pkCount
	repo.db.table[act.ID] = &act
	return act, nil
}

func (repo *activityRepository) ListForUser(_ context.Context, userID int) ([]tracker.Activity, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(a *tracker.Activity) bool { return a.UserID == userID }), nil
}

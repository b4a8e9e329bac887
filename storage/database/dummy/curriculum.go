package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/trezcool/hustle/core/curriculum"
)

type moduleRepository struct {
	db *moduleTable
}

var _ curriculum.ModuleRepository = (*moduleRepository)(nil)

func NewModuleRepository(db *DB) curriculum.ModuleRepository {
	return &moduleRepository{db: db.module}
}

func (repo *moduleRepository) List(_ context.Context) ([]curriculum.Module, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	mods := make([]curriculum.Module, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		mods = append(mods, *m)
	}
	sort.Slice(mods, func(i, j int) bool {
		if mods[i].OrderIndex == mods[j].OrderIndex {
			return mods[i].ID < mods[j].ID
		}
		return mods[i].OrderIndex < mods[j].OrderIndex
	})
	return mods, nil
}

func (repo *moduleRepository) Get(_ context.Context, id int) (curriculum.Module, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if mod, ok := repo.db.table[id]; ok {
		return *mod, nil
	}
	return curriculum.Module{}, curriculum.ErrModuleNotFound
}

func (repo *moduleRepository) Create(_ context.Context, mod curriculum.Module) (curriculum.Module, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	mod.ID = repo.db.pkCount
	repo.db.table[mod.ID] = &mod
	return mod, nil
}

func (repo *moduleRepository) Update(_ context.Context, mod curriculum.Module) (curriculum.Module, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[mod.ID]
	if !ok {
		return curriculum.Module{}, curriculum.ErrModuleNotFound
	}
	mod.CreatedAt = orig.CreatedAt
	repo.db.table[mod.ID] = &mod
	return mod, nil
}

func (repo *moduleRepository) Delete(_ context.Context, id int) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return false, nil
	}
	delete(repo.db.table, id)
	return true, nil
}

type progressRepository struct {
	db *progressTable
}

var _ curriculum.ProgressRepository = (*progressRepository)(nil)

func NewProgressRepository(db *DB) curriculum.ProgressRepository {
	return &progressRepository{db: db.progress}
}

// query copies the rows matching keep, sorted by ID. Callers must hold the lock.
func (repo *progressRepository) query(keep func(p *curriculum.UserProgress) bool) []curriculum.UserProgress {
	prgs := make([]curriculum.UserProgress, 0)
	for _, p := range repo.db.table {
		if keep == nil || keep(p) {
			prgs = append(prgs, *p)
		}
	}
	sort.Slice(prgs, func(i, j int) bool { return prgs[i].ID < prgs[j].ID })
	return prgs
}

func (repo *progressRepository) List(_ context.Context) ([]curriculum.UserProgress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(nil), nil
}

func (repo *progressRepository) Get(_ context.Context, id int) (curriculum.UserProgress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return curriculum.UserProgress{}, curriculum.ErrProgressNotFound
}

func (repo *progressRepository) ListForUser(_ context.Context, userID int) ([]curriculum.UserProgress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(p *curriculum.UserProgress) bool { return p.UserID == userID }), nil
}

func (repo *progressRepository) Upsert(_ context.Context, userID, moduleID int, completed bool, progress int) (curriculum.UserProgress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	now := time.Now().UTC()
	var completedAt *time.Time
	if completed {
		completedAt = &now
	}

	for _, p := range repo.db.table {
		if p.UserID == userID && p.ModuleID == moduleID {
			if !(p.Completed && completed) {
				p.CompletedAt = completedAt
			}
			p.Completed = completed
			p.Progress = progress
			return *p, nil
		}
	}

	repo.db.pkCount++
	p := curriculum.UserProgress{
		ID:          repo.db.pkCount,
		UserID:      userID,
		ModuleID:    moduleID,
		Completed:   completed,
		Progress:    progress,
		CompletedAt: completedAt,
		CreatedAt:   now,
	}
	repo.db.table[p.ID] = &p
	return p, nil
}

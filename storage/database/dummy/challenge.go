package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/trezcool/hustle/core/challenge"
)

type challengeRepository struct {
	db *challengeTable
}

var _ challenge.Repository = (*challengeRepository)(nil)

func NewChallengeRepository(db *DB) challenge.Repository {
	return &challengeRepository{db: db.challenge}
}

func (repo *challengeRepository) query(keep func(p *challenge.Progress) bool) []challenge.Progress {
	prgs := make([]challenge.Progress, 0)
	for _, p := range repo.db.table {
		if keep == nil || keep(p) {
			prgs = append(prgs, *p)
		}
	}
	sort.Slice(prgs, func(i, j int) bool { return prgs[i].ID < prgs[j].ID })
	return prgs
}

func (repo *challengeRepository) List(_ context.Context) ([]challenge.Progress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(nil), nil
}

func (repo *challengeRepository) Get(_ context.Context, id int) (challenge.Progress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return challenge.Progress{}, challenge.ErrNotFound
}

func (repo *challengeRepository) ListForUser(_ context.Context, userID int) ([]challenge.Progress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(p *challenge.Progress) bool { return p.UserID == userID }), nil
}

func (repo *challengeRepository) UpsertDay(_ context.Context, userID, day int, completed bool) (challenge.Progress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	now := time.Now().UTC()
	var completedAt *time.Time
	if completed {
		completedAt = &now
	}

	for _, p := range repo.db.table {
		if p.UserID == userID && p.Day == day {
			if !(p.Completed && completed) {
				p.CompletedAt = completedAt
			}
			p.Completed = completed
			return *p, nil
		}
	}

	repo.db.pkCount++
	p := challenge.Progress{
		ID:          repo.db.pkCount,
		UserID:      userID,
		Day:         day,
		Completed:   completed,
		CompletedAt: completedAt,
		CreatedAt:   now,
	}
	repo.db.table[p.ID] = &p
	return p, nil
}

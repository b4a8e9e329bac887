package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/hustle/core/library"
)

type templateRepository struct {
	db *templateTable
}

var _ library.Repository = (*templateRepository)(nil)

func NewTemplateRepository(db *DB) library.Repository {
	return &templateRepository{db: db.template}
}

func (repo *templateRepository) List(_ context.Context) ([]library.Template, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tmpls := make([]library.Template, 0, len(repo.db.table))
	for _, t := range repo.db.table {
		tmpls = append(tmpls, *t)
	}
	sort.Slice(tmpls, func(i, j int) bool { return tmpls[i].ID < tmpls[j].ID })
	return tmpls, nil
}

func (repo *templateRepository) Get(_ context.Context, id int) (library.Template, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.table[id]; ok {
		return *t, nil
	}
	return library.Template{}, library.ErrNotFound
}

func (repo *templateRepository) Create(_ context.Context, tmpl library.Template) (library.Template, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	tmpl.ID = repo.db.pkCount
	repo.db.table[tmpl.ID] = &tmpl
	return tmpl, nil
}

func (repo *templateRepository) Update(_ context.Context, tmpl library.Template) (library.Template, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[tmpl.ID]
	if !ok {
		return library.Template{}, library.ErrNotFound
	}
	tmpl.CreatedAt = orig.CreatedAt
	repo.db.table[tmpl.ID] = &tmpl
	return tmpl, nil
}

func (repo *templateRepository) Delete(_ context.Context, id int) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return false, nil
	}
	delete(repo.db.table, id)
	return true, nil
}

package curriculum

import (
	"context"
	"sort"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/hustle/core"
)

type fakeModules struct {
	mods map[int]Module
	next int
}

func newFakeModules(mods ...Module) *fakeModules {
	fm := &fakeModules{mods: make(map[int]Module)}
	for _, m := range mods {
		fm.mods[m.ID] = m
		if m.ID > fm.next {
			fm.next = m.ID
		}
	}
	return fm
}

func (r *fakeModules) List(context.Context) ([]Module, error) {
	mods := make([]Module, 0, len(r.mods))
	for _, m := range r.mods {
		mods = append(mods, m)
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i].OrderIndex < mods[j].OrderIndex })
	return mods, nil
}

func (r *fakeModules) Get(_ context.Context, id int) (Module, error) {
	m, ok := r.mods[id]
	if !ok {
		return Module{}, ErrModuleNotFound
	}
	return m, nil
}

func (r *fakeModules) Create(_ context.Context, mod Module) (Module, error) {
	r.next++
	mod.ID = r.next
	r.mods[mod.ID] = mod
	return mod, nil
}

func (r *fakeModules) Update(_ context.Context, mod Module) (Module, error) {
	r.mods[mod.ID] = mod
	return mod, nil
}

func (r *fakeModules) Delete(_ context.Context, id int) (bool, error) {
	_, ok := r.mods[id]
	delete(r.mods, id)
	return ok, nil
}

type fakeProgress struct {
	prgs []UserProgress
}

func (r *fakeProgress) List(context.Context) ([]UserProgress, error) { return r.prgs, nil }

func (r *fakeProgress) Get(_ context.Context, id int) (UserProgress, error) {
	for _, p := range r.prgs {
		if p.ID == id {
			return p, nil
		}
	}
	return UserProgress{}, ErrProgressNotFound
}

func (r *fakeProgress) ListForUser(_ context.Context, userID int) ([]UserProgress, error) {
	var prgs []UserProgress
	for _, p := range r.prgs {
		if p.UserID == userID {
			prgs = append(prgs, p)
		}
	}
	return prgs, nil
}

func (r *fakeProgress) Upsert(_ context.Context, userID, moduleID int, completed bool, progress int) (UserProgress, error) {
	for i, p := range r.prgs {
		if p.UserID == userID && p.ModuleID == moduleID {
			r.prgs[i].Completed, r.prgs[i].Progress = completed, progress
			return r.prgs[i], nil
		}
	}
	p := UserProgress{ID: len(r.prgs) + 1, UserID: userID, ModuleID: moduleID, Completed: completed, Progress: progress}
	r.prgs = append(r.prgs, p)
	return p, nil
}

func newTestService() *Service {
	return NewService(
		newFakeModules(
			Module{ID: 1, Title: "Niche", Content: "free content", Tier: core.TierFree, OrderIndex: 2, Status: StatusPublished},
			Module{ID: 2, Title: "Brand", Content: "premium content", Tier: core.TierPremium, OrderIndex: 1, Status: StatusPublished},
			Module{ID: 3, Title: "Draft", Content: "wip", Tier: core.TierFree, OrderIndex: 3, Status: StatusDraft},
		),
		&fakeProgress{},
	)
}

func TestService_ListModuleViews(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	views, err := svc.ListModuleViews(ctx, core.TierFree, QueryFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, 2, views[0].ID)
	assert.True(t, views[0].Locked)
	assert.Empty(t, views[0].Content)
	assert.False(t, views[1].Locked)
	assert.Equal(t, "free content", views[1].Content)

	views, err = svc.ListModuleViews(ctx, core.TierLifetime, QueryFilter{Status: StatusPublished})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.False(t, views[0].Locked)
	assert.Equal(t, "premium content", views[0].Content)

	views, err = svc.ListModuleViews(ctx, core.TierFree, QueryFilter{Status: "archived"})
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestService_GetAccessibleModule(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name    string
		id      int
		tier    core.Tier
		wantErr error
	}{
		{name: "free module", id: 1, tier: core.TierFree},
		{name: "premium module, free user", id: 2, tier: core.TierFree, wantErr: core.ErrUpgradeRequired},
		{name: "premium module, premium user", id: 2, tier: core.TierPremium},
		{name: "missing", id: 99, tier: core.TierLifetime, wantErr: ErrModuleNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, err := svc.GetAccessibleModule(context.Background(), tt.id, tt.tier)
			assert.Equal(t, tt.wantErr, errors.Cause(err))
			if tt.wantErr == nil {
				assert.Equal(t, tt.id, mod.ID)
			}
		})
	}
}

func TestService_RecordProgress(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.RecordProgress(ctx, 1, core.TierFree, RecordProgress{ModuleID: 2, Progress: 10})
	assert.Equal(t, core.ErrUpgradeRequired, err)
	_, err = svc.RecordProgress(ctx, 1, core.TierFree, RecordProgress{ModuleID: 99, Progress: 10})
	assert.Equal(t, ErrModuleNotFound, err)

	first, err := svc.RecordProgress(ctx, 1, core.TierFree, RecordProgress{ModuleID: 1, Progress: 40})
	require.NoError(t, err)
	second, err := svc.RecordProgress(ctx, 1, core.TierFree, RecordProgress{ModuleID: 1, Progress: 100, Completed: true})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Completed)

	_, err = svc.RecordProgress(ctx, 1, core.TierPremium, RecordProgress{ModuleID: 2, Progress: 50})
	require.NoError(t, err)
	_, err = svc.RecordProgress(ctx, 2, core.TierFree, RecordProgress{ModuleID: 1, Progress: 50})
	require.NoError(t, err)

	n, err := svc.CountActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	prgs, err := svc.ListProgress(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, prgs, 2)
}

func TestService_ManageModules(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mod, err := svc.CreateModule(ctx, NewModule{Title: "Pricing", Description: "d", Content: "c", OrderIndex: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, mod.ID)
	assert.Equal(t, core.TierFree, mod.Tier)
	assert.Equal(t, StatusPublished, mod.Status)
	assert.Equal(t, defaultEstimatedMinutes, mod.EstimatedMinutes)

	title := "Pricing 101"
	tier := core.TierPremium
	mod, err = svc.UpdateModule(ctx, mod.ID, UpdateModule{Title: &title, Tier: &tier})
	require.NoError(t, err)
	assert.Equal(t, "Pricing 101", mod.Title)
	assert.Equal(t, core.TierPremium, mod.Tier)
	assert.Equal(t, "c", mod.Content)

	_, err = svc.UpdateModule(ctx, 99, UpdateModule{Title: &title})
	assert.Equal(t, ErrModuleNotFound, err)

	deleted, err := svc.DeleteModule(ctx, mod.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = svc.DeleteModule(ctx, mod.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestModuleValidation(t *testing.T) {
	validate := validator.New()
	translator, _ := ut.New(en.New(), en.New()).GetTranslator("en")
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	nm := NewModule{Title: " Pricing ", Description: "d", Content: "c", OrderIndex: 1, Tier: " PREMIUM ", Status: "Draft"}
	require.NoError(t, nm.Validate(validate))
	assert.Equal(t, "Pricing", nm.Title)
	assert.Equal(t, core.TierPremium, nm.Tier)
	assert.Equal(t, StatusDraft, nm.Status)

	bad := NewModule{Title: "x", Description: "d", Content: "c", OrderIndex: 1, Tier: core.TierLifetime, Status: "archived"}
	var vErrs validator.ValidationErrors
	require.True(t, errors.As(bad.Validate(validate), &vErrs))
	fields := map[string]string{}
	for _, fe := range vErrs {
		fields[fe.Field()] = fe.Translate(translator)
	}
	assert.Equal(t, map[string]string{
		"tier":   "tier must be one of free or premium",
		"status": moduleStatusText,
	}, fields)

	assert.Error(t, RecordProgress{ModuleID: 1, Progress: 101}.Validate(validate))
	assert.Error(t, RecordProgress{Progress: 10}.Validate(validate))
	assert.NoError(t, RecordProgress{ModuleID: 1}.Validate(validate))
}

package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/hustle/apps/api/echo"
	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/curriculum"
)

func TestCurriculumApi_Modules(t *testing.T) {
	app := setup(t)

	t.Run("list hides locked content", func(t *testing.T) {
		rec := app.run(t, httpTest{method: http.MethodGet, path: "/api/modules", wantCode: http.StatusOK})
		var views []curriculum.ModuleView
		decode(t, rec, &views)
		require.Len(t, views, 4)
		for i, v := range views {
			assert.Equal(t, i+1, v.OrderIndex)
			locked := v.Tier == core.TierPremium
			assert.Equal(t, locked, v.Locked, v.Title)
			assert.Equal(t, locked, v.Content == "", v.Title)
		}
	})

	tests := []httpTest{
		{name: "filter by status", method: http.MethodGet, path: "/api/modules?status=draft", wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{name: "free module", method: http.MethodGet, path: "/api/modules/1", wantCode: http.StatusOK},
		{name: "premium module", method: http.MethodGet, path: "/api/modules/3", wantCode: http.StatusForbidden, wantData: errData(t, core.ErrUpgradeRequired.Error())},
		{name: "missing module", method: http.MethodGet, path: "/api/modules/99", wantCode: http.StatusNotFound, wantData: errData(t, "module not found")},
		{name: "malformed id", method: http.MethodGet, path: "/api/modules/abc", wantCode: http.StatusNotFound, wantData: errData(t, "module not found")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}
}

func TestCurriculumApi_Progress(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{name: "locked module", method: http.MethodPost, path: "/api/progress", body: `{"moduleId": 3, "progress": 10}`, wantCode: http.StatusForbidden},
		{name: "missing module", method: http.MethodPost, path: "/api/progress", body: `{"moduleId": 99, "progress": 10}`, wantCode: http.StatusNotFound, wantData: errData(t, "module not found")},
		{name: "no module", method: http.MethodPost, path: "/api/progress", body: `{"progress": 10}`, wantCode: http.StatusBadRequest},
		{name: "progress over 100", method: http.MethodPost, path: "/api/progress", body: `{"moduleId": 2, "progress": 101}`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}

	t.Run("upsert existing", func(t *testing.T) {
		rec := app.run(t, httpTest{method: http.MethodPost, path: "/api/progress", body: `{"moduleId": 2, "progress": 100, "completed": true}`, wantCode: http.StatusOK})
		var prg curriculum.UserProgress
		decode(t, rec, &prg)
		assert.Equal(t, 2, prg.ID)
		assert.True(t, prg.Completed)
		assert.NotNil(t, prg.CompletedAt)

		rec = app.run(t, httpTest{method: http.MethodGet, path: "/api/progress", wantCode: http.StatusOK})
		var prgs []curriculum.UserProgress
		decode(t, rec, &prgs)
		assert.Len(t, prgs, 2)
	})
}

func TestCurriculumApi_Admin(t *testing.T) {
	t.Run("open without admin key", func(t *testing.T) {
		app := setup(t)
		rec := app.run(t, httpTest{
			method:   http.MethodPost,
			path:     "/api/modules",
			body:     `{"title": "Selling at Markets", "description": "Fairs and pop-ups", "content": "...", "orderIndex": 5}`,
			wantCode: http.StatusCreated,
		})
		var mod curriculum.Module
		decode(t, rec, &mod)
		assert.Equal(t, 5, mod.ID)
		assert.Equal(t, core.TierFree, mod.Tier)
		assert.Equal(t, curriculum.StatusPublished, mod.Status)
		assert.Equal(t, 30, mod.EstimatedMinutes)
	})

	app := setup(t, func(conf *core.Config, _ *Options) {
		conf.Auth.AdminKey = "s3cret"
	})
	admin := http.Header{"X-Admin-Key": {"s3cret"}}

	tests := []httpTest{
		{name: "no key", method: http.MethodPost, path: "/api/modules", body: `{}`, wantCode: http.StatusForbidden, wantData: errData(t, "permission denied")},
		{name: "wrong key", method: http.MethodDelete, path: "/api/modules/1", header: http.Header{"X-Admin-Key": {"nope"}}, wantCode: http.StatusForbidden},
		{name: "invalid module", method: http.MethodPost, path: "/api/modules", body: `{"title": "x", "orderIndex": 0, "tier": "lifetime"}`, header: admin, wantCode: http.StatusBadRequest},
		{name: "update", method: http.MethodPatch, path: "/api/modules/4", body: `{"tier": "free", "estimatedMinutes": 45}`, header: admin, wantCode: http.StatusOK},
		{name: "update missing", method: http.MethodPatch, path: "/api/modules/99", body: `{"title": "x"}`, header: admin, wantCode: http.StatusNotFound},
		{name: "delete", method: http.MethodDelete, path: "/api/modules/1", header: admin, wantCode: http.StatusNoContent},
		{name: "delete again", method: http.MethodDelete, path: "/api/modules/1", header: admin, wantCode: http.StatusNotFound, wantData: errData(t, "module not found")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}

	// module 4 became free
	app.run(t, httpTest{method: http.MethodGet, path: "/api/modules/4", wantCode: http.StatusOK})
}

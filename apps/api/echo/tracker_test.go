package echoapi_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/hustle/core/tracker"
)

func TestTrackerApi(t *testing.T) {
	app := setup(t)

	t.Run("seeded stats", func(t *testing.T) {
		rec := app.run(t, httpTest{method: http.MethodGet, path: "/api/stats", wantCode: http.StatusOK})
		var stats tracker.Stats
		decode(t, rec, &stats)
		assert.Equal(t, 6.0, stats.TotalHours) // 5.5 rounds up
		assert.Equal(t, 75.0, stats.TotalIncome)
		assert.Equal(t, 1, stats.ActiveProjects)
	})

	tests := []httpTest{
		{name: "unknown type", method: http.MethodPost, path: "/api/activities", body: `{"type": "sleep", "hours": 1}`, wantCode: http.StatusBadRequest},
		{name: "too many hours", method: http.MethodPost, path: "/api/activities", body: `{"type": "practice", "hours": 25}`, wantCode: http.StatusBadRequest},
		{name: "no hours", method: http.MethodPost, path: "/api/activities", body: `{"type": "practice"}`, wantCode: http.StatusBadRequest},
		{name: "negative income", method: http.MethodPost, path: "/api/activities", body: `{"type": "practice", "hours": 1, "income": -1}`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.run(t, tt)
		})
	}

	t.Run("create", func(t *testing.T) {
		rec := app.run(t, httpTest{
			method:   http.MethodPost,
			path:     "/api/activities",
			body:     `{"type": "Marketing", "hours": 1.5, "income": 20, "description": "Instagram reel", "date": "2021-03-05T10:00:00Z"}`,
			wantCode: http.StatusCreated,
		})
		var act tracker.Activity
		decode(t, rec, &act)
		assert.Equal(t, 3, act.ID)
		assert.Equal(t, tracker.TypeMarketing, act.Type)
		assert.True(t, act.Date.Equal(time.Date(2021, 3, 5, 10, 0, 0, 0, time.UTC)))

		rec = app.run(t, httpTest{method: http.MethodGet, path: "/api/activities", wantCode: http.StatusOK})
		var acts []tracker.Activity
		decode(t, rec, &acts)
		require.Len(t, acts, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{acts[0].ID, acts[1].ID, acts[2].ID}, "newest first")
	})
}

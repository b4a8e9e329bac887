package challenge

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/trezcool/hustle/core"
)

var ErrNotFound = core.NewNotFoundError("challenge day")

type (
	Repository interface {
		List(ctx context.Context) ([]Progress, error)
		Get(ctx context.Context, id int) (Progress, error)
		ListForUser(ctx context.Context, userID int) ([]Progress, error)
		// UpsertDay keeps at most one record per (userID, day).
		UpsertDay(ctx context.Context, userID, day int, completed bool) (Progress, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) ListForUser(ctx context.Context, userID int) ([]Progress, error) {
	return svc.repo.ListForUser(ctx, userID)
}

func (svc *Service) MarkDay(ctx context.Context, userID int, md MarkDay) (Progress, error) {
	return svc.repo.UpsertDay(ctx, userID, md.Day, md.Completed)
}

// Summarize lays the user's records over the fixed seven days.
// The current day is the one after the last completed count, capped at the final day.
func (svc *Service) Summarize(ctx context.Context, userID int) (Summary, error) {
	prgs, err := svc.repo.ListForUser(ctx, userID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "listing challenge progress")
	}

	summary := Summary{Days: make([]DaySummary, Days)}
	for i := range summary.Days {
		summary.Days[i] = DaySummary{Day: i + 1, Task: Tasks[i]}
	}
	for _, p := range prgs {
		if p.Day < 1 || p.Day > Days {
			continue
		}
		ds := &summary.Days[p.Day-1]
		ds.Completed = p.Completed
		ds.CompletedAt = p.CompletedAt
	}
	for _, ds := range summary.Days {
		if ds.Completed {
			summary.CompletedDays++
		}
	}

	summary.CurrentDay = summary.CompletedDays + 1
	if summary.CurrentDay > Days {
		summary.CurrentDay = Days
	}
	summary.Percent = int(math.Round(float64(summary.CompletedDays) / Days * 100))
	return summary, nil
}

package tracker

import (
	"context"
	"math"
	"sort"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/hustle/core"
)

var (
	ErrNotFound = core.NewNotFoundError("activity")

	nowFunc = time.Now // mockable

	activityTypeTag  = "activitytype"
	activityTypeText = "type must be one of client_work, practice, marketing or admin"
)

type (
	Repository interface {
		List(ctx context.Context) ([]Activity, error)
		Get(ctx context.Context, id int) (Activity, error)
		Create(ctx context.Context, act Activity) (Activity, error)
		ListForUser(ctx context.Context, userID int) ([]Activity, error)
	}

	// ProjectCounter reports how many projects (started, unfinished modules) a user has going.
	ProjectCounter interface {
		CountActive(ctx context.Context, userID int) (int, error)
	}

	Service struct {
		repo     Repository
		projects ProjectCounter
	}
)

func NewService(repo Repository, projects ProjectCounter) *Service {
	return &Service{repo: repo, projects: projects}
}

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterOneOf(validate, translator, activityTypeTag, activityTypeText, ActivityTypes...)
}

// ListForUser returns the user's activities, newest first.
func (svc *Service) ListForUser(ctx context.Context, userID int) ([]Activity, error) {
	acts, err := svc.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "listing activities")
	}
	sort.SliceStable(acts, func(i, j int) bool {
		if acts[i].Date.Equal(acts[j].Date) {
			return acts[i].ID > acts[j].ID
		}
		return acts[i].Date.After(acts[j].Date)
	})
	return acts, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Activity, error) {
	return svc.repo.Get(ctx, id)
}

func (svc *Service) Create(ctx context.Context, userID int, na NewActivity) (Activity, error) {
	now := nowFunc()
	act := Activity{
		UserID:    userID,
		Type:      na.Type,
		Hours:     na.Hours,
		Date:      now,
		CreatedAt: now.UTC(),
	}
	if na.Income != nil {
		act.Income = *na.Income
	}
	if na.Description != "" {
		act.Description = &na.Description
	}
	if na.Date != nil && !na.Date.IsZero() {
		act.Date = *na.Date
	}
	return svc.repo.Create(ctx, act)
}

// ComputeStats aggregates the user's activities.
// Hours are rounded half away from zero; "this month" starts on the 1st at 00:00 server local time.
func (svc *Service) ComputeStats(ctx context.Context, userID int) (Stats, error) {
	acts, err := svc.repo.ListForUser(ctx, userID)
	if err != nil {
		return Stats{}, errors.Wrap(err, "listing activities")
	}

	now := nowFunc().In(time.Local)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)

	var stats Stats
	var hours float64
	for _, a := range acts {
		hours += a.Hours
		stats.TotalIncome += a.Income
		if !a.Date.Before(monthStart) {
			stats.ThisMonthIncome += a.Income
		}
	}
	stats.TotalHours = math.Round(hours)

	if svc.projects != nil {
		if stats.ActiveProjects, err = svc.projects.CountActive(ctx, userID); err != nil {
			return Stats{}, errors.Wrap(err, "counting active projects")
		}
	}
	return stats, nil
}

package curriculum

import (
	"context"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/hustle/core"
)

var (
	// errors
	ErrModuleNotFound   = core.NewNotFoundError("module")
	ErrProgressNotFound = core.NewNotFoundError("progress")

	moduleStatusTag  = "modulestatus"
	moduleStatusText = "status must be one of draft or published"
)

type (
	ModuleRepository interface {
		// List returns modules sorted ascending by OrderIndex.
		List(ctx context.Context) ([]Module, error)
		Get(ctx context.Context, id int) (Module, error)
		Create(ctx context.Context, mod Module) (Module, error)
		Update(ctx context.Context, mod Module) (Module, error)
		Delete(ctx context.Context, id int) (bool, error)
	}

	ProgressRepository interface {
		List(ctx context.Context) ([]UserProgress, error)
		Get(ctx context.Context, id int) (UserProgress, error)
		ListForUser(ctx context.Context, userID int) ([]UserProgress, error)
		// Upsert keeps at most one record per (userID, moduleID).
		// CompletedAt is set when completed and cleared otherwise.
		Upsert(ctx context.Context, userID, moduleID int, completed bool, progress int) (UserProgress, error)
	}

	Service struct {
		modules  ModuleRepository
		progress ProgressRepository
	}
)

func NewService(modules ModuleRepository, progress ProgressRepository) *Service {
	return &Service{modules: modules, progress: progress}
}

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterOneOf(validate, translator, moduleStatusTag, moduleStatusText, StatusDraft, StatusPublished)
}

func (svc *Service) ListModules(ctx context.Context, filter QueryFilter) ([]Module, error) {
	mods, err := svc.modules.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing modules")
	}
	if filter.Status == "" {
		return mods, nil
	}
	filtered := make([]Module, 0, len(mods))
	for _, m := range mods {
		if m.Status == filter.Status {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// ListModuleViews lists modules as seen by a user on userTier.
func (svc *Service) ListModuleViews(ctx context.Context, userTier core.Tier, filter QueryFilter) ([]ModuleView, error) {
	mods, err := svc.ListModules(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]ModuleView, 0, len(mods))
	for _, m := range mods {
		views = append(views, m.View(userTier))
	}
	return views, nil
}

func (svc *Service) GetModule(ctx context.Context, id int) (Module, error) {
	return svc.modules.Get(ctx, id)
}

// GetAccessibleModule returns the full module, or core.ErrUpgradeRequired when userTier does not grant access.
func (svc *Service) GetAccessibleModule(ctx context.Context, id int, userTier core.Tier) (Module, error) {
	mod, err := svc.modules.Get(ctx, id)
	if err != nil {
		return Module{}, err
	}
	if !core.IsAccessible(mod.Tier, userTier) {
		return Module{}, core.ErrUpgradeRequired
	}
	return mod, nil
}

func (svc *Service) CreateModule(ctx context.Context, nm NewModule) (Module, error) {
	mod := Module{
		Title:            nm.Title,
		Description:      nm.Description,
		Content:          nm.Content,
		Tier:             nm.Tier,
		OrderIndex:       nm.OrderIndex,
		Status:           nm.Status,
		EstimatedMinutes: nm.EstimatedMinutes,
		CreatedAt:        time.Now().UTC(),
	}
	if mod.Tier == "" {
		mod.Tier = core.TierFree
	}
	if mod.Status == "" {
		mod.Status = StatusPublished
	}
	if mod.EstimatedMinutes == 0 {
		mod.EstimatedMinutes = defaultEstimatedMinutes
	}
	return svc.modules.Create(ctx, mod)
}

func (svc *Service) UpdateModule(ctx context.Context, id int, um UpdateModule) (Module, error) {
	mod, err := svc.modules.Get(ctx, id)
	if err != nil {
		return Module{}, err
	}
	return svc.modules.Update(ctx, um.apply(mod))
}

func (svc *Service) DeleteModule(ctx context.Context, id int) (bool, error) {
	return svc.modules.Delete(ctx, id)
}

func (svc *Service) ListProgress(ctx context.Context, userID int) ([]UserProgress, error) {
	return svc.progress.ListForUser(ctx, userID)
}

// RecordProgress upserts the user's progress on an existing module their tier grants access to.
func (svc *Service) RecordProgress(ctx context.Context, userID int, userTier core.Tier, rp RecordProgress) (UserProgress, error) {
	if _, err := svc.GetAccessibleModule(ctx, rp.ModuleID, userTier); err != nil {
		return UserProgress{}, err
	}
	return svc.progress.Upsert(ctx, userID, rp.ModuleID, rp.Completed, rp.Progress)
}

// CountActive returns how many modules the user has started but not finished.
func (svc *Service) CountActive(ctx context.Context, userID int) (int, error) {
	prgs, err := svc.progress.ListForUser(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "listing progress")
	}
	var n int
	for _, p := range prgs {
		if p.IsActive() {
			n++
		}
	}
	return n, nil
}

package library

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/hustle/core"
)

var (
	// errors
	ErrNotFound   = core.NewNotFoundError("template")
	ErrNoDownload = core.NewNotFoundError("download")
)

type (
	Repository interface {
		List(ctx context.Context) ([]Template, error)
		Get(ctx context.Context, id int) (Template, error)
		Create(ctx context.Context, tmpl Template) (Template, error)
		Update(ctx context.Context, tmpl Template) (Template, error)
		Delete(ctx context.Context, id int) (bool, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) List(ctx context.Context, filter QueryFilter) ([]Template, error) {
	tmpls, err := svc.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing templates")
	}
	if filter.Category == "" {
		return tmpls, nil
	}
	filtered := make([]Template, 0, len(tmpls))
	for _, t := range tmpls {
		if t.Category == filter.Category {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// ListViews lists templates as seen by a user on userTier.
func (svc *Service) ListViews(ctx context.Context, userTier core.Tier, filter QueryFilter) ([]TemplateView, error) {
	tmpls, err := svc.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]TemplateView, 0, len(tmpls))
	for _, t := range tmpls {
		views = append(views, t.View(userTier))
	}
	return views, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Template, error) {
	return svc.repo.Get(ctx, id)
}

// DownloadURL returns the download reference of a template the user's tier grants access to.
func (svc *Service) DownloadURL(ctx context.Context, id int, userTier core.Tier) (string, error) {
	tmpl, err := svc.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !core.IsAccessible(tmpl.Tier, userTier) {
		return "", core.ErrUpgradeRequired
	}
	if tmpl.DownloadURL == nil || *tmpl.DownloadURL == "" {
		return "", ErrNoDownload
	}
	return *tmpl.DownloadURL, nil
}

func (svc *Service) Create(ctx context.Context, nt NewTemplate) (Template, error) {
	tmpl := Template{
		Title:       nt.Title,
		Description: nt.Description,
		Category:    nt.Category,
		Tier:        nt.Tier,
		FileType:    nt.FileType,
		CreatedAt:   time.Now().UTC(),
	}
	if nt.DownloadURL != "" {
		tmpl.DownloadURL = &nt.DownloadURL
	}
	if tmpl.Tier == "" {
		tmpl.Tier = core.TierFree
	}
	if tmpl.FileType == "" {
		tmpl.FileType = defaultFileType
	}
	return svc.repo.Create(ctx, tmpl)
}

func (svc *Service) Update(ctx context.Context, id int, ut UpdateTemplate) (Template, error) {
	tmpl, err := svc.repo.Get(ctx, id)
	if err != nil {
		return Template{}, err
	}
	return svc.repo.Update(ctx, ut.apply(tmpl))
}

func (svc *Service) Delete(ctx context.Context, id int) (bool, error) {
	return svc.repo.Delete(ctx, id)
}

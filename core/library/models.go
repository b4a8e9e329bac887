package library

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/hustle/core"
)

const defaultFileType = "pdf"

type Template struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tier        core.Tier `json:"tier"`
	DownloadURL *string   `json:"downloadUrl"`
	FileType    string    `json:"fileType"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
}

// View returns the Template as seen by a user on userTier: locked templates do not expose their download.
func (t Template) View(userTier core.Tier) TemplateView {
	tv := TemplateView{Template: t, Locked: !core.IsAccessible(t.Tier, userTier)}
	if tv.Locked {
		tv.DownloadURL = nil
	}
	return tv
}

type TemplateView struct {
	Template
	Locked bool `json:"locked"`
}

// NewTemplate contains information needed to create a new Template.
type NewTemplate struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Tier        core.Tier `json:"tier" validate:"omitempty,contenttier"`
	DownloadURL string    `json:"downloadUrl" validate:"omitempty,uri"`
	FileType    string    `json:"fileType" validate:"omitempty,alphanum"`
}

func (nt *NewTemplate) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	nt.Description = core.CleanString(nt.Description)
	nt.Category = core.CleanString(nt.Category, true /* lower */)
	nt.Tier = core.Tier(core.CleanString(string(nt.Tier), true /* lower */))
	nt.DownloadURL = core.CleanString(nt.DownloadURL)
	nt.FileType = core.CleanString(nt.FileType, true /* lower */)
	return validate.Struct(nt)
}

// UpdateTemplate defines what information may be provided to modify an existing Template.
// Nil fields are left unchanged; an empty downloadUrl removes the download.
type UpdateTemplate struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Category    *string    `json:"category" validate:"omitempty,min=1"`
	Tier        *core.Tier `json:"tier" validate:"omitempty,contenttier"`
	DownloadURL *string    `json:"downloadUrl" validate:"omitempty,uri"`
	FileType    *string    `json:"fileType" validate:"omitempty,alphanum"`
}

func (ut *UpdateTemplate) Validate(validate *validator.Validate) error {
	for _, s := range []*string{ut.Title, ut.Description} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	for _, s := range []*string{ut.Category, ut.FileType} {
		if s != nil {
			*s = core.CleanString(*s, true /* lower */)
		}
	}
	if ut.DownloadURL != nil {
		*ut.DownloadURL = core.CleanString(*ut.DownloadURL)
	}
	if ut.Tier != nil {
		*ut.Tier = core.Tier(core.CleanString(string(*ut.Tier), true /* lower */))
	}
	return validate.Struct(ut)
}

func (ut UpdateTemplate) apply(t Template) Template {
	if ut.Title != nil {
		t.Title = *ut.Title
	}
	if ut.Description != nil {
		t.Description = *ut.Description
	}
	if ut.Category != nil {
		t.Category = *ut.Category
	}
	if ut.Tier != nil {
		t.Tier = *ut.Tier
	}
	if ut.DownloadURL != nil {
		if *ut.DownloadURL == "" {
			t.DownloadURL = nil
		} else {
			url := *ut.DownloadURL
			t.DownloadURL = &url
		}
	}
	if ut.FileType != nil {
		t.FileType = *ut.FileType
	}
	return t
}

type QueryFilter struct {
	Category string `query:"category"`
}

func (qf *QueryFilter) Clean() {
	qf.Category = core.CleanString(qf.Category, true /* lower */)
}

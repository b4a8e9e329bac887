package curriculum

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/hustle/core"
)

// Module statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

const defaultEstimatedMinutes = 30

type Module struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Content          string    `json:"content"`
	Tier             core.Tier `json:"tier"`
	OrderIndex       int       `json:"orderIndex"`
	Status           string    `json:"status"`
	EstimatedMinutes int       `json:"estimatedMinutes"`
	CreatedAt        time.Time `json:"createdAt"` // UTC
}

// View returns the Module as seen by a user on userTier: locked modules do not expose their content.
func (m Module) View(userTier core.Tier) ModuleView {
	mv := ModuleView{Module: m, Locked: !core.IsAccessible(m.Tier, userTier)}
	if mv.Locked {
		mv.Content = ""
	}
	return mv
}

type ModuleView struct {
	Module
	Locked bool `json:"locked"`
}

type UserProgress struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	ModuleID    int        `json:"moduleId"`
	Completed   bool       `json:"completed"`
	Progress    int        `json:"progress"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"` // UTC
}

// IsActive reports whether the module was started but not finished.
func (p UserProgress) IsActive() bool {
	return p.Progress > 0 && p.Progress < 100
}

// NewModule contains information needed to create a new Module.
type NewModule struct {
	Title            string    `json:"title" validate:"required"`
	Description      string    `json:"description" validate:"required"`
	Content          string    `json:"content" validate:"required"`
	Tier             core.Tier `json:"tier" validate:"omitempty,contenttier"`
	OrderIndex       int       `json:"orderIndex" validate:"min=1"`
	Status           string    `json:"status" validate:"omitempty,modulestatus"`
	EstimatedMinutes int       `json:"estimatedMinutes" validate:"omitempty,min=1"`
}

func (nm *NewModule) Validate(validate *validator.Validate) error {
	nm.Title = core.CleanString(nm.Title)
	nm.Description = core.CleanString(nm.Description)
	nm.Content = core.CleanString(nm.Content)
	nm.Tier = core.Tier(core.CleanString(string(nm.Tier), true /* lower */))
	nm.Status = core.CleanString(nm.Status, true /* lower */)
	return validate.Struct(nm)
}

// UpdateModule defines what information may be provided to modify an existing Module.
// Nil fields are left unchanged.
type UpdateModule struct {
	Title            *string    `json:"title" validate:"omitempty,min=1"`
	Description      *string    `json:"description" validate:"omitempty,min=1"`
	Content          *string    `json:"content" validate:"omitempty,min=1"`
	Tier             *core.Tier `json:"tier" validate:"omitempty,contenttier"`
	OrderIndex       *int       `json:"orderIndex" validate:"omitempty,min=1"`
	Status           *string    `json:"status" validate:"omitempty,modulestatus"`
	EstimatedMinutes *int       `json:"estimatedMinutes" validate:"omitempty,min=1"`
}

func (um *UpdateModule) Validate(validate *validator.Validate) error {
	cleanPtr(um.Title, false)
	cleanPtr(um.Description, false)
	cleanPtr(um.Content, false)
	cleanPtr(um.Status, true)
	if um.Tier != nil {
		*um.Tier = core.Tier(core.CleanString(string(*um.Tier), true /* lower */))
	}
	return validate.Struct(um)
}

// apply merges the set fields of um into m.
func (um UpdateModule) apply(m Module) Module {
	if um.Title != nil {
		m.Title = *um.Title
	}
	if um.Description != nil {
		m.Description = *um.Description
	}
	if um.Content != nil {
		m.Content = *um.Content
	}
	if um.Tier != nil {
		m.Tier = *um.Tier
	}
	if um.OrderIndex != nil {
		m.OrderIndex = *um.OrderIndex
	}
	if um.Status != nil {
		m.Status = *um.Status
	}
	if um.EstimatedMinutes != nil {
		m.EstimatedMinutes = *um.EstimatedMinutes
	}
	return m
}

// RecordProgress is the payload to upsert the current user's progress on a module.
type RecordProgress struct {
	ModuleID  int  `json:"moduleId" validate:"required,min=1"`
	Progress  int  `json:"progress" validate:"min=0,max=100"`
	Completed bool `json:"completed"`
}

func (rp RecordProgress) Validate(validate *validator.Validate) error { return validate.Struct(rp) }

type QueryFilter struct {
	Status string `query:"status"`
}

func (qf *QueryFilter) Clean() {
	qf.Status = core.CleanString(qf.Status, true /* lower */)
}

func cleanPtr(s *string, lower bool) {
	if s != nil {
		*s = core.CleanString(*s, lower)
	}
}

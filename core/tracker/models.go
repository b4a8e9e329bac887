package tracker

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/hustle/core"
)

// Activity types
const (
	TypeClientWork = "client_work"
	TypePractice   = "practice"
	TypeMarketing  = "marketing"
	TypeAdmin      = "admin"
)

var ActivityTypes = []string{TypeClientWork, TypePractice, TypeMarketing, TypeAdmin}

// Activity is a logged unit of work. It is never modified after creation.
type Activity struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Type        string    `json:"type"`
	Hours       float64   `json:"hours"`
	Income      float64   `json:"income"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
}

type Stats struct {
	TotalHours      float64 `json:"totalHours"`
	TotalIncome     float64 `json:"totalIncome"`
	ThisMonthIncome float64 `json:"thisMonthIncome"`
	ActiveProjects  int     `json:"activeProjects"`
}

// NewActivity contains information needed to log a new Activity.
type NewActivity struct {
	Type        string     `json:"type" validate:"required,activitytype"`
	Hours       float64    `json:"hours" validate:"min=0.1,max=24"`
	Income      *float64   `json:"income" validate:"omitempty,min=0"`
	Description string     `json:"description" validate:"max=500"`
	Date        *time.Time `json:"date"`
}

func (na *NewActivity) Validate(validate *validator.Validate) error {
	na.Type = core.CleanString(na.Type, true /* lower */)
	na.Description = core.CleanString(na.Description)
	return validate.Struct(na)
}

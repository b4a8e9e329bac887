package challenge

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Days is the length of the challenge.
const Days = 7

// Tasks holds the prompt of each challenge day, Tasks[0] being day 1.
var Tasks = [Days]string{
	"Set up your creative workspace and define your business goals",
	"Research your target audience and competitors",
	"Create your first portfolio piece and price it competitively",
	"Set up your social media presence and post your first content",
	"Reach out to 3 potential clients or collaborators",
	"Create a simple website or online portfolio",
	"Launch your business and celebrate your achievement!",
}

type Progress struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	Day         int        `json:"day"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"` // UTC
}

type (
	DaySummary struct {
		Day         int        `json:"day"`
		Task        string     `json:"task"`
		Completed   bool       `json:"completed"`
		CompletedAt *time.Time `json:"completedAt"`
	}

	Summary struct {
		Days          []DaySummary `json:"days"`
		CompletedDays int          `json:"completedDays"`
		CurrentDay    int          `json:"currentDay"`
		Percent       int          `json:"percent"`
	}
)

// MarkDay is the payload to upsert a challenge day for the current user.
type MarkDay struct {
	Day       int  `json:"day" validate:"required,min=1,max=7"`
	Completed bool `json:"completed"`
}

func (md MarkDay) Validate(validate *validator.Validate) error { return validate.Struct(md) }

// Package seed holds the demo data loaded into a fresh store.
package seed

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/challenge"
	"github.com/trezcool/hustle/core/curriculum"
	"github.com/trezcool/hustle/core/library"
	"github.com/trezcool/hustle/core/tracker"
	"github.com/trezcool/hustle/core/user"
)

const (
	DemoUsername = "sarah_artist"
	DemoEmail    = "sarah@example.com"
	DemoPassword = "password123"
)

// Data is a full demo dataset. IDs are assigned in slice order starting at 1.
type Data struct {
	Users      []user.User
	Modules    []curriculum.Module
	Templates  []library.Template
	Progress   []curriculum.UserProgress
	Activities []tracker.Activity
	Challenge  []challenge.Progress
}

// New builds the demo dataset relative to now.
func New(now time.Time) (Data, error) {
	now = now.UTC()
	day := 24 * time.Hour
	twoDaysAgo := now.Add(-2 * day)
	oneDayAgo := now.Add(-day)

	demo := user.User{
		ID:        1,
		Username:  DemoUsername,
		Email:     DemoEmail,
		Tier:      core.TierFree,
		CreatedAt: now,
	}
	if err := demo.SetPassword(DemoPassword); err != nil {
		return Data{}, errors.Wrap(err, "hashing demo password")
	}

	module := func(id int, title, desc, content string, tier core.Tier, minutes int) curriculum.Module {
		return curriculum.Module{
			ID:               id,
			Title:            title,
			Description:      desc,
			Content:          content,
			Tier:             tier,
			OrderIndex:       id,
			Status:           curriculum.StatusPublished,
			EstimatedMinutes: minutes,
			CreatedAt:        now,
		}
	}
	template := func(id int, title, desc, category string, tier core.Tier, url, fileType string) library.Template {
		return library.Template{
			ID:          id,
			Title:       title,
			Description: desc,
			Category:    category,
			Tier:        tier,
			DownloadURL: &url,
			FileType:    fileType,
			CreatedAt:   now,
		}
	}
	desc := func(s string) *string { return &s }

	return Data{
		Users: []user.User{demo},
		Modules: []curriculum.Module{
			module(1, "Finding Your Creative Niche", "Discover what makes your art unique",
				"In this module, you'll learn how to identify your unique creative style...", core.TierFree, 12),
			module(2, "Pricing Your Creative Work", "Learn to value your time and talent",
				"Pricing is one of the biggest challenges for creative entrepreneurs...", core.TierFree, 18),
			module(3, "Building Your Brand Identity", "Create a memorable visual presence",
				"Your brand is more than just a logo - it's your entire visual identity...", core.TierPremium, 25),
			module(4, "Marketing on Social Media", "Grow your audience authentically",
				"Social media marketing for creatives requires a different approach...", core.TierPremium, 30),
		},
		Templates: []library.Template{
			template(1, "Basic Pricing Calculator", "Simple spreadsheet to calculate your artwork pricing",
				"business", core.TierFree, "/templates/pricing-calculator.pdf", "pdf"),
			template(2, "Goal Setting Worksheet", "Set and track your creative business goals",
				"planning", core.TierFree, "/templates/goal-worksheet.pdf", "pdf"),
			template(3, "Complete Business Planner", "90-day roadmap with goals, milestones, and action items",
				"business", core.TierPremium, "/templates/business-planner.pdf", "pdf"),
			template(4, "Financial Tracker", "Track income, expenses, and profit margins",
				"finance", core.TierPremium, "/templates/financial-tracker.xlsx", "excel"),
		},
		Progress: []curriculum.UserProgress{
			{ID: 1, UserID: 1, ModuleID: 1, Completed: true, Progress: 100, CompletedAt: &twoDaysAgo, CreatedAt: now},
			{ID: 2, UserID: 1, ModuleID: 2, Progress: 65, CreatedAt: now},
		},
		Activities: []tracker.Activity{
			{ID: 1, UserID: 1, Type: tracker.TypeClientWork, Hours: 3, Income: 75,
				Description: desc("Logo design for local cafe"), Date: oneDayAgo, CreatedAt: now},
			{ID: 2, UserID: 1, Type: tracker.TypePractice, Hours: 2.5, Income: 0,
				Description: desc("Digital painting practice"), Date: twoDaysAgo, CreatedAt: now},
		},
		Challenge: []challenge.Progress{
			{ID: 1, UserID: 1, Day: 1, Completed: true, CompletedAt: &twoDaysAgo, CreatedAt: now},
			{ID: 2, UserID: 1, Day: 2, Completed: true, CompletedAt: &oneDayAgo, CreatedAt: now},
			{ID: 3, UserID: 1, Day: 3, CreatedAt: now},
		},
	}, nil
}

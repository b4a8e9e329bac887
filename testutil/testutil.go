// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/curriculum"
	"github.com/trezcool/hustle/core/library"
	"github.com/trezcool/hustle/core/tracker"
	"github.com/trezcool/hustle/core/user"
	logsvc "github.com/trezcool/hustle/services/logger"
)

func NewConfig() *core.Config {
	return &core.Config{
		AppName:          "Creative Hustle",
		Env:              "TEST",
		Build:            "test",
		TestMode:         true,
		SecretKey:        "test-secret",
		DefaultFromEmail: "noreply@hustle.test",
		FrontendBaseURL:  "http://localhost:5000",
		Server: core.ServerConfig{
			Host:               ":8000",
			ShutdownTimeout:    time.Second,
			DisableRequestLogs: true,
			AllowedOrigins:     []string{"*"},
		},
		Database: core.DatabaseConfig{Engine: core.EngineMemory},
		Auth: core.AuthConfig{
			Mode:                 core.AuthModeFixed,
			FixedUserID:          1,
			TokenExpirationDelta: time.Hour,
		},
		Billing: core.BillingConfig{StripePriceID: "price_test", Currency: "usd"},
	}
}

// NewLogger returns a logger that discards everything.
func NewLogger() core.Logger {
	return logsvc.NewRollbarLogger(zap.NewNop().Sugar(), &core.Config{Env: "TEST", TestMode: true})
}

// NewValidator returns a validator with every custom tag registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator, _ := ut.New(en.New(), en.New()).GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	curriculum.InitValidators(validate, translator)
	tracker.InitValidators(validate, translator)
	return validate, translator
}

func CreateUser(t *testing.T, repo user.Repository, uname, email, pwd string, tier core.Tier) user.User {
	t.Helper()
	usr := user.User{
		Username:  uname,
		Email:     email,
		Tier:      tier,
		CreatedAt: time.Now().UTC(),
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.Create(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateModule(t *testing.T, repo curriculum.ModuleRepository, title string, tier core.Tier, order int) curriculum.Module {
	t.Helper()
	mod, err := repo.Create(context.Background(), curriculum.Module{
		Title:            title,
		Description:      title + " description",
		Content:          title + " content",
		Tier:             tier,
		OrderIndex:       order,
		Status:           curriculum.StatusPublished,
		EstimatedMinutes: 30,
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateModule() failed: %v", err)
	}
	return mod
}

func CreateTemplate(t *testing.T, repo library.Repository, title, category string, tier core.Tier, url string) library.Template {
	t.Helper()
	tmpl := library.Template{
		Title:       title,
		Description: title + " description",
		Category:    category,
		Tier:        tier,
		FileType:    "pdf",
		CreatedAt:   time.Now().UTC(),
	}
	if url != "" {
		tmpl.DownloadURL = &url
	}
	tmpl, err := repo.Create(context.Background(), tmpl)
	if err != nil {
		t.Fatalf("CreateTemplate() failed: %v", err)
	}
	return tmpl
}

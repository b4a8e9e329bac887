package core

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAccessible(t *testing.T) {
	tests := []struct {
		content, user Tier
		want          bool
	}{
		{TierFree, TierFree, true},
		{TierFree, TierPremium, true},
		{TierPremium, TierFree, false},
		{TierPremium, TierPremium, true},
		{TierPremium, TierLifetime, true},
		{TierPremium, "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAccessible(tt.content, tt.user), "IsAccessible(%q, %q)", tt.content, tt.user)
	}

	assert.True(t, TierLifetime.IsValidUserTier())
	assert.False(t, TierLifetime.IsValidContentTier())
	assert.False(t, Tier("gold").IsValidUserTier())
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Hello World", CleanString("  Hello World \n"))
	assert.Equal(t, "hello world", CleanString("  Hello World \n", true))
}

func TestErrors(t *testing.T) {
	notFound := NewNotFoundError("module")
	assert.Equal(t, "module not found", notFound.Error())
	assert.True(t, IsNotFound(errors.Wrap(notFound, "getting")))
	assert.False(t, IsNotFound(ErrUpgradeRequired))

	assert.True(t, IsShutdown(errors.Wrap(NewShutdownError("integrity"), "saving")))
	assert.False(t, IsShutdown(errors.New("boom")))

	assert.Equal(t, "email: taken", ValidationError{Fields: []FieldError{{Field: "email", Error: "taken"}}}.Error())
}

func TestValidators(t *testing.T) {
	validate := validator.New()
	translator, _ := ut.New(en.New(), en.New()).GetTranslator("en")
	InitValidators(validate, translator)

	type payload struct {
		Username string `json:"username" validate:"required,alphanum_"`
		Tier     Tier   `json:"tier" validate:"omitempty,usertier"`
		Gated    Tier   `json:"gated" validate:"omitempty,contenttier"`
	}

	tests := []struct {
		name       string
		data       payload
		wantFields map[string]string
	}{
		{name: "valid", data: payload{Username: "sarah_artist", Tier: TierLifetime, Gated: TierPremium}},
		{
			name:       "missing username",
			data:       payload{},
			wantFields: map[string]string{"username": "this field is required"},
		},
		{
			name: "bad values",
			data: payload{Username: "sarah artist", Tier: "gold", Gated: TierLifetime},
			wantFields: map[string]string{
				"username": alphaNumUnderText,
				"tier":     userTierText,
				"gated":    contentTierText,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.data)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var vErrs validator.ValidationErrors
			require.True(t, errors.As(err, &vErrs))
			got := make(map[string]string, len(vErrs))
			for _, fe := range vErrs {
				got[fe.Field()] = fe.Translate(translator)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestEmailMessage_Render(t *testing.T) {
	conf := &Config{AppName: "Creative Hustle", FrontendBaseURL: "http://localhost:5000"}

	plain := &EmailMessage{BodyStr: "hi"}
	require.NoError(t, plain.Render(conf))
	assert.Equal(t, "hi", plain.TextContent)
	assert.Empty(t, plain.HTMLContent)

	tmpl := &EmailMessage{
		TemplateName: "upgrade",
		TemplateData: map[string]interface{}{"Username": "sarah_artist", "Tier": TierPremium},
	}
	require.NoError(t, tmpl.Render(conf))
	assert.Contains(t, tmpl.TextContent, "sarah_artist")
	assert.Contains(t, tmpl.HTMLContent, "sarah_artist")
	assert.True(t, tmpl.HasContent())
	assert.False(t, tmpl.HasRecipients())

	missing := &EmailMessage{TemplateName: "nope"}
	require.NoError(t, missing.Render(conf))
	assert.False(t, missing.HasContent())
}

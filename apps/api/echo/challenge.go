package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hustle/core/challenge"
)

type challengeApi struct {
	svc      *challenge.Service
	validate *validator.Validate
}

func registerChallengeAPI(g *echo.Group, currentUser echo.MiddlewareFunc, svc *challenge.Service, validate *validator.Validate) {
	api := challengeApi{svc: svc, validate: validate}

	g.GET("/challenge", api.query, currentUser)
	g.GET("/challenge/summary", api.summary, currentUser)
	g.POST("/challenge", api.markDay, currentUser)
}

func (api *challengeApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	prgs, err := api.svc.ListForUser(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing challenge progress")
	}
	return ctx.JSON(http.StatusOK, prgs)
}

func (api *challengeApi) summary(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	summary, err := api.svc.Summarize(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "summarizing challenge")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *challengeApi) markDay(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data challenge.MarkDay
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkDay")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	prg, err := api.svc.MarkDay(ctx.Request().Context(), usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "marking challenge day")
	}
	return ctx.JSON(http.StatusOK, prg)
}

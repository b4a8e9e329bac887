package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hustle/core/curriculum"
)

type curriculumApi struct {
	svc      *curriculum.Service
	validate *validator.Validate
}

func registerCurriculumAPI(
	g *echo.Group,
	currentUser echo.MiddlewareFunc,
	admin echo.MiddlewareFunc,
	svc *curriculum.Service,
	validate *validator.Validate,
) {
	api := curriculumApi{svc: svc, validate: validate}

	g.GET("/modules", api.query, currentUser)
	g.GET("/modules/:id", api.retrieve, currentUser)
	g.POST("/modules", api.create, admin)
	g.PATCH("/modules/:id", api.update, admin)
	g.DELETE("/modules/:id", api.destroy, admin)

	g.GET("/progress", api.queryProgress, currentUser)
	g.POST("/progress", api.recordProgress, currentUser)
}

func (api *curriculumApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	filter := new(curriculum.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Clean()

	views, err := api.svc.ListModuleViews(ctx.Request().Context(), usr.Tier, *filter)
	if err != nil {
		return errors.Wrap(err, "listing modules")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *curriculumApi) retrieve(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	id, err := paramID(ctx, curriculum.ErrModuleNotFound)
	if err != nil {
		return err
	}

	mod, err := api.svc.GetAccessibleModule(ctx.Request().Context(), id, usr.Tier)
	if err != nil {
		return errors.Wrap(err, "getting module")
	}
	return ctx.JSON(http.StatusOK, mod.View(usr.Tier))
}

func (api *curriculumApi) create(ctx echo.Context) error {
	var data curriculum.NewModule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewModule")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	mod, err := api.svc.CreateModule(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating module")
	}
	return ctx.JSON(http.StatusCreated, mod)
}

func (api *curriculumApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, curriculum.ErrModuleNotFound)
	if err != nil {
		return err
	}

	var data curriculum.UpdateModule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateModule")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	mod, err := api.svc.UpdateModule(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating module")
	}
	return ctx.JSON(http.StatusOK, mod)
}

func (api *curriculumApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, curriculum.ErrModuleNotFound)
	if err != nil {
		return err
	}

	ok, err := api.svc.DeleteModule(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting module")
	}
	if !ok {
		return curriculum.ErrModuleNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *curriculumApi) queryProgress(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	prgs, err := api.svc.ListProgress(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing progress")
	}
	return ctx.JSON(http.StatusOK, prgs)
}

func (api *curriculumApi) recordProgress(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data curriculum.RecordProgress
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RecordProgress")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	prg, err := api.svc.RecordProgress(ctx.Request().Context(), usr.ID, usr.Tier, data)
	if err != nil {
		return errors.Wrap(err, "recording progress")
	}
	return ctx.JSON(http.StatusOK, prg)
}

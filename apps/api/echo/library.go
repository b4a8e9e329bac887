package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hustle/core/library"
)

type libraryApi struct {
	svc      *library.Service
	validate *validator.Validate
}

func registerLibraryAPI(
	g *echo.Group,
	currentUser echo.MiddlewareFunc,
	admin echo.MiddlewareFunc,
	svc *library.Service,
	validate *validator.Validate,
) {
	api := libraryApi{svc: svc, validate: validate}

	g.GET("/templates", api.query, currentUser)
	g.GET("/templates/:id/download", api.download, currentUser)
	g.POST("/templates", api.create, admin)
	g.PATCH("/templates/:id", api.update, admin)
	g.DELETE("/templates/:id", api.destroy, admin)
}

func (api *libraryApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	filter := new(library.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Clean()

	views, err := api.svc.ListViews(ctx.Request().Context(), usr.Tier, *filter)
	if err != nil {
		return errors.Wrap(err, "listing templates")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *libraryApi) download(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	id, err := paramID(ctx, library.ErrNotFound)
	if err != nil {
		return err
	}

	url, err := api.svc.DownloadURL(ctx.Request().Context(), id, usr.Tier)
	if err != nil {
		return errors.Wrap(err, "getting download")
	}
	return ctx.Redirect(http.StatusFound, url)
}

func (api *libraryApi) create(ctx echo.Context) error {
	var data library.NewTemplate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTemplate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tmpl, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating template")
	}
	return ctx.JSON(http.StatusCreated, tmpl)
}

func (api *libraryApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, library.ErrNotFound)
	if err != nil {
		return err
	}

	var data library.UpdateTemplate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTemplate")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tmpl, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating template")
	}
	return ctx.JSON(http.StatusOK, tmpl)
}

func (api *libraryApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx, library.ErrNotFound)
	if err != nil {
		return err
	}

	ok, err := api.svc.Delete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting template")
	}
	if !ok {
		return library.ErrNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

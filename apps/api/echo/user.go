package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hustle/core/user"
)

type userApi struct {
	svc      *user.Service
	validate *validator.Validate
}

func registerUserAPI(g *echo.Group, currentUser echo.MiddlewareFunc, svc *user.Service, validate *validator.Validate) {
	api := userApi{svc: svc, validate: validate}

	g.GET("/user", api.retrieve, currentUser)
	g.POST("/upgrade", api.upgrade, currentUser)
}

func (api *userApi) retrieve(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) upgrade(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data user.UpgradeTier
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpgradeTier")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err = api.svc.UpgradeTier(ctx.Request().Context(), usr, data.Tier)
	if err != nil {
		return errors.Wrap(err, "upgrading tier")
	}
	return ctx.JSON(http.StatusOK, usr)
}

// paramID reads the ":id" path parameter. Malformed ids are reported as notFound.
func paramID(ctx echo.Context, notFound error) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

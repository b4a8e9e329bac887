package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/billing"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errTokenExpired  = echo.NewHTTPError(http.StatusUnauthorized, "token expired")
	errHttpForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

type errorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var body errorBody

		cause := errors.Cause(err)
		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			body.Message = fmt.Sprintf("%v", origErr.Message)
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			body.Fields = make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				body.Fields[vErr.Field()] = vErr.Translate(translator)
			}
			body.Message = "invalid input"
		case *core.ValidationError:
			code = http.StatusBadRequest
			body.Message = origErr.Error()
			if len(origErr.Fields) > 0 {
				body.Fields = make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					body.Fields[fErr.Field] = fErr.Error
				}
			}
		case *core.NotFoundError:
			code = http.StatusNotFound
			body.Message = origErr.Error()
		default:
			switch cause {
			case core.ErrUpgradeRequired:
				code = http.StatusForbidden
				body.Message = cause.Error()
			case billing.ErrProvider:
				code = http.StatusBadGateway
				body.Message = err.Error()
				logger.Error(body.Message, logArgs(ctx, err)...)
			default: // any other error is a server error
				code = http.StatusInternalServerError
				body.Message = cause.Error()
				msg := http.StatusText(http.StatusInternalServerError)
				logger.Error(msg, logArgs(ctx, errors.Wrap(err, msg))...)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// logArgs attaches the request id and, when resolved, the acting user.
func logArgs(ctx echo.Context, err error) []interface{} {
	args := []interface{}{err, map[string]interface{}{
		"requestId": ctx.Response().Header().Get(echo.HeaderXRequestID),
		"path":      ctx.Request().URL.Path,
	}}
	if usr, uErr := getContextUser(ctx); uErr == nil {
		args = append(args, usr)
	}
	return args
}

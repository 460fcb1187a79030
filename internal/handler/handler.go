package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "moviereview/internal/errors"
	"moviereview/internal/validation"
)

// fail maps err onto the error response. Internal failures are logged with
// their detail and answered with internalMessage (or the generic message).
func fail(c echo.Context, log *zap.Logger, err error, internalMessage string) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.IsInternal() {
		log.Error("request failed",
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.String("method", c.Request().Method),
			zap.String("route", c.Path()),
			zap.Error(err),
		)
		if internalMessage != "" && httpErr.Code == "INTERNAL_ERROR" {
			httpErr.Message = internalMessage
		}
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bindAndValidate decodes the request into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return validation.BindError(err)
	}
	return c.Validate(req)
}

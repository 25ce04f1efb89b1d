package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"loan-management-system/internal/domain/errs"
)

// statusFor maps a domain error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Infrastructure details are
// logged, never returned to the client.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.JSON(code, ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

// bindAndValidate decodes the body into req and validates it. A non-nil
// response must be written by the caller as-is.
func bindAndValidate(c echo.Context, req any) (int, *ErrorResponse) {
	if err := c.Bind(req); err != nil {
		return http.StatusBadRequest, &ErrorResponse{Error: "invalid body"}
	}
	if err := c.Validate(req); err != nil {
		return http.StatusUnprocessableEntity, &ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		}
	}
	return 0, nil
}

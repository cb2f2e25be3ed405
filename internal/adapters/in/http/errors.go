package http

import (
	"errors"
	"net/http"

	"mealorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON error body: a stable machine-readable code plus a
// human-readable message.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an error kind to its HTTP status. Validation failures are
// 400 except MENU_ITEM_UNAVAILABLE, which is a well-formed request the
// catalog cannot currently fulfil.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		if errs.Code(err) == "MENU_ITEM_UNAVAILABLE" {
			return http.StatusUnprocessableEntity
		}
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrDependencyUnavailable),
		errors.Is(err, errs.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the error as JSON. Server-side failures get a generic
// message so internals never leak to clients; the caller is expected to have
// logged the original error.
func respondError(ctx echo.Context, err error) error {
	status := statusFor(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "The service is temporarily unable to process the request"
	}

	// Value errors from domain constructors carry no request-level code.
	code := errs.Code(err)
	if status < http.StatusInternalServerError && code == "INTERNAL_ERROR" {
		code = "INVALID_REQUEST"
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

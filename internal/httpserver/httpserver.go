package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopbackend/internal/service"
)

// statusOf maps a flow failure kind to its HTTP status. Anything that is
// not a known kind is an internal error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrOTPExpired):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func failJSON(c echo.Context, err error) error {
	code := statusOf(err)
	message := "Internal server error"
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}
	return c.JSON(code, echo.Map{"message": message, "success": false})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"listings-service/internal/application/common"
)

// ApiResponse is the envelope every endpoint returns.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, ApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError maps the application error kind to a status code. Internal
// details are logged, never returned to the client.
func respondError(c echo.Context, logger zerolog.Logger, err error) error {
	status := http.StatusInternalServerError
	message := err.Error()

	switch common.KindOf(err) {
	case common.ErrorKindValidation:
		status = http.StatusBadRequest
	case common.ErrorKindNotFound:
		status = http.StatusNotFound
	case common.ErrorKindAuthorization:
		status = http.StatusForbidden
	case common.ErrorKindConflict:
		status = http.StatusConflict
	case common.ErrorKindInvalidCredentials:
		status = http.StatusUnauthorized
	case common.ErrorKindAccountInactive:
		status = http.StatusForbidden
	case common.ErrorKindRateLimited:
		status = http.StatusTooManyRequests
	default:
		logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		message = "internal server error"
	}

	return c.JSON(status, ApiResponse{
		Success: false,
		Error:   message,
	})
}

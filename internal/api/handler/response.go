package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// envelope is the canonical response shape for every API endpoint:
// { success, data?, message, error? }. Error carries a short taxonomy tag
// (e.g. "validation_error"), never internal details.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func ok(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, envelope{Success: true, Data: data, Message: message})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Success: false, Message: message})
}

func failWith(c echo.Context, status int, message, errTag string) error {
	return c.JSON(status, envelope{Success: false, Message: message, Error: errTag})
}

// serverError logs the real cause and answers with a generic 500 message.
// Raw error text never reaches the client.
func serverError(c echo.Context, err error, message string) error {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")
	return fail(c, http.StatusInternalServerError, message)
}

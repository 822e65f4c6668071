package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aurelia-jewels/storefront-api/internal/api/middleware"
)

// callerID extracts the identity injected by the Auth middleware. Presence
// proves the middleware ran; a protected route without it is a wiring bug,
// answered with 401 rather than a panic.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// optionalCallerID returns the identity when present and "" for guests.
func optionalCallerID(c echo.Context) string {
	id, _ := c.Get(middleware.CtxUserID).(string)
	return id
}

// tokenInfo returns the jti and expiry of the presented token.
func tokenInfo(c echo.Context) (jti string, exp time.Time) {
	jti, _ = c.Get(middleware.CtxTokenJTI).(string)
	exp, _ = c.Get(middleware.CtxTokenExp).(time.Time)
	return jti, exp
}

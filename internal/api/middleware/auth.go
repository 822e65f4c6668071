package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by the auth middleware.
const (
	CtxUserID   = "user_id"
	CtxTokenJTI = "token_jti"
	CtxTokenExp = "token_exp"
)

// Revoker is the denylist checked on every authenticated request.
type Revoker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth validates the bearer token and injects the caller's identity into the
// request context. Requests without a valid, unrevoked token are rejected
// with 401 before reaching any handler.
func Auth(jwtSecret string, revoker Revoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authenticate(c, jwtSecret, revoker); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OptionalAuth authenticates when an Authorization header is present and
// passes the request through as a guest when it is not. A header that is
// present but invalid is still rejected rather than silently downgraded.
func OptionalAuth(jwtSecret string, revoker Revoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			if err := authenticate(c, jwtSecret, revoker); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func authenticate(c echo.Context, jwtSecret string, revoker Revoker) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	jti, _ := claims["jti"].(string)
	if jti != "" && revoker != nil {
		revoked, err := revoker.IsRevoked(c.Request().Context(), jti)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "could not verify token")
		}
		if revoked {
			return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
		}
	}

	c.Set(CtxUserID, sub)
	c.Set(CtxTokenJTI, jti)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		c.Set(CtxTokenExp, exp.Time)
	} else {
		c.Set(CtxTokenExp, time.Time{})
	}

	return nil
}

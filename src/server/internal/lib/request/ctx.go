package request

import (
	"context"
	"github.com/accountkeeper/accounts-be/src/server/internal/errors/api"
	"github.com/accountkeeper/accounts-be/src/server/internal/errors/auth"
	"github.com/accountkeeper/accounts-be/src/shared/lib/env"
	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
)

func Context(c echo.Context) context.Context {
	switch env.Get() {
	case env.Production:
		return c.Request().Context()

	case env.Development, env.Test:
		// opt to not use the request context in development situations
		// to avoid timeouts during debugging
		return context.Background()

	default:
		panic("Unrecognized environment")
	}
}

func AuthHeader(c echo.Context) (string, *api.Error) {
	header := c.Request().Header.Get("authorization")
	if header == "" {
		return "", api.CommitError(
			errors.New("No authorization header found on the request"),
			auth.BadAuthorizationHeaderCode,
			"Authorization header is missing")
	}

	return header, nil
}

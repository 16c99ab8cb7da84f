package gateway

import (
	"fmt"
	"github.com/accountkeeper/accounts-be/src/server/api_error"
	"github.com/accountkeeper/accounts-be/src/server/internal/errors/api"
	"github.com/accountkeeper/accounts-be/src/server/internal/errors/auth"
	usererrors "github.com/accountkeeper/accounts-be/src/server/internal/user/errors"
	"github.com/labstack/echo/v4"
	"net/http"
)

var httpStatusCodeMap = map[api.ErrorCode]int{
	api.DefaultErrorCode:                http.StatusInternalServerError,
	auth.WrongCredentialsCode:           http.StatusUnauthorized,
	auth.UnverifiedAccountCode:          http.StatusUnauthorized,
	auth.NotAuthorizedCode:              http.StatusUnauthorized,
	auth.BadAuthorizationHeaderCode:     http.StatusBadRequest,
	usererrors.ExistingEmailCode:        http.StatusConflict,
	usererrors.BadUserDataCode:          http.StatusBadRequest,
	usererrors.VerificationNotFoundCode: http.StatusNotFound,
	usererrors.NoAccountCode:            http.StatusNotFound,
	usererrors.AlreadyVerifiedCode:      http.StatusBadRequest,
	usererrors.NoAvatarFileCode:         http.StatusBadRequest,
	usererrors.BadSubscriptionCode:      http.StatusBadRequest,
}

func ErrorResponse(c echo.Context, err *api.Error) error {
	statusCode, ok := httpStatusCodeMap[err.ErrorCode]
	if !ok {
		msg := fmt.Sprintf("Error code %s has no HTTP status code mapping", err.ErrorCode)
		panic(msg)
	}

	return c.JSON(statusCode, api_error.JSONAPIError{
		Code:         string(err.ErrorCode),
		Msg:          err.UserMessage,
		ErrorDetails: err.Error(),
	})
}

package auth

import (
	"github.com/accountkeeper/accounts-be/src/server/internal/errors/api"
)

const (
	WrongCredentialsCode       = api.ErrorCode("wrong_credentials")
	UnverifiedAccountCode      = api.ErrorCode("unverified_account")
	NotAuthorizedCode          = api.ErrorCode("not_authorized")
	BadAuthorizationHeaderCode = api.ErrorCode("bad_header")
)

package usererrors

import (
	"github.com/accountkeeper/accounts-be/src/server/internal/errors/api"
)

const (
	ExistingEmailCode        = api.ErrorCode("existing_email")
	BadUserDataCode          = api.ErrorCode("validation_failed")
	VerificationNotFoundCode = api.ErrorCode("verification_not_found")
	NoAccountCode            = api.ErrorCode("no_account")
	AlreadyVerifiedCode      = api.ErrorCode("already_verified")
	NoAvatarFileCode         = api.ErrorCode("no_file")
	BadSubscriptionCode      = api.ErrorCode("bad_subscription")
)

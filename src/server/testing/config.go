package testing

import (
	"github.com/accountkeeper/accounts-be/src/server/internal/user/session"
)

const (
	TokenSecret = "test-token-secret"
)

func TestSigner() session.Signer {
	return session.NewSigner(TokenSecret)
}

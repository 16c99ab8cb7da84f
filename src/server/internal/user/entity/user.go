package userentity

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/accountkeeper/accounts-be/src/shared/lib/jsonlib"
	"github.com/cockroachdb/errors"
)

type Subscription string

const (
	StarterSubscription  Subscription = "starter"
	ProSubscription      Subscription = "pro"
	BusinessSubscription Subscription = "business"
)

var subscriptions = map[Subscription]bool{
	StarterSubscription:  true,
	ProSubscription:      true,
	BusinessSubscription: true,
}

func (s Subscription) Valid() bool {
	return subscriptions[s]
}

type UserFields struct {
	ID                string       `json:"id,omitempty"`
	Email             string       `json:"email"`
	Password          string       `json:"password"`
	Subscription      Subscription `json:"subscription"`
	AvatarURL         string       `json:"avatarURL"`
	Token             string       `json:"token,omitempty"`
	Verified          bool         `json:"verified"`
	VerificationToken string       `json:"verificationToken,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// User is the account document. Fields that aren't in UserFields survive
// a read-modify-write cycle through the Extra map, so that newer documents
// aren't truncated by older server versions.
type User struct {
	jsonlib.Flatten[UserFields]
}

func NewUser(email string, hashedPassword string, subscription Subscription, verificationToken string) (User, error) {
	if subscription == "" {
		subscription = StarterSubscription
	}

	if !subscription.Valid() {
		return User{}, errors.Errorf("Subscription type %s is not recognized", subscription)
	}

	if verificationToken == "" {
		return User{}, errors.New("A new user must carry a verification token")
	}

	return User{
		Flatten: jsonlib.Flatten[UserFields]{
			Defined: UserFields{
				Email:             email,
				Password:          hashedPassword,
				Subscription:      subscription,
				AvatarURL:         GravatarURL(email),
				Verified:          false,
				VerificationToken: verificationToken,
			},
			Extra: map[string]any{},
		},
	}, nil
}

// GravatarURL derives the default avatar location from the email address,
// sized to match uploaded avatars
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return fmt.Sprintf("//www.gravatar.com/avatar/%x?s=250", md5.Sum([]byte(normalized)))
}

// IsGravatarURL reports whether the avatar is the externally hosted default,
// which must never be treated as a deletable stored file
func IsGravatarURL(avatarURL string) bool {
	return strings.Contains(avatarURL, "gravatar")
}

type Store interface {
	CreateUser(ctx context.Context, newUser User) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID string) (User, error)
	GetUserByVerificationToken(ctx context.Context, verificationToken string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
}

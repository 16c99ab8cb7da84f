package testing

import (
	"context"
	"sync"
	"time"

	userentity "github.com/accountkeeper/accounts-be/src/server/internal/user/entity"
	"github.com/accountkeeper/accounts-be/src/server/internal/user/password"
	userstorage "github.com/accountkeeper/accounts-be/src/server/internal/user/storage"
	"github.com/accountkeeper/accounts-be/src/shared/lib/errors/mark"
	"github.com/google/uuid"
	"github.com/onsi/gomega"
)

var (
	// in the store, verified, and holds an active session token
	VerifiedUser = User{
		ID:           "verified-user-id",
		Email:        "verified@accountkeeper.app",
		Password:     "swordfish-1",
		Subscription: userentity.ProSubscription,
		Verified:     true,
	}

	// in the store, but hasn't consumed their verification token yet
	UnverifiedUser = User{
		ID:                "unverified-user-id",
		Email:             "unverified@accountkeeper.app",
		Password:          "hunter-22",
		Subscription:      userentity.StarterSubscription,
		Verified:          false,
		VerificationToken: "unverified-user-verification-token",
	}

	// holds a well-formed token but was never saved to the store
	NoAccountUser = User{
		ID:       "no-account-user-id",
		Email:    "adude@someoneelse.com",
		Password: "password-3",
		Verified: true,
	}
)

// User is the seeded account shape for tests. Password is the plaintext -
// the store only ever sees the bcrypt digest of it.
type User struct {
	ID                string
	Email             string
	Password          string
	Subscription      userentity.Subscription
	Verified          bool
	VerificationToken string
}

var (
	sessionTokens     = map[string]string{}
	sessionTokensLock sync.Mutex
)

// TokenForUserID returns a stable signed token per user ID so that the
// seeded session and the request credential always agree.
func TokenForUserID(userID string) string {
	sessionTokensLock.Lock()
	defer sessionTokensLock.Unlock()

	if token, ok := sessionTokens[userID]; ok {
		return token
	}

	token := ExpectSuccess(TestSigner().TokenForUserID(userID))
	sessionTokens[userID] = token
	return token
}

var _ userentity.Store = &FakeUserStore{}

// FakeUserStore keeps user documents in memory, keyed by email like the
// real table, and fails with the same marks the storage layer uses.
type FakeUserStore struct {
	mutex sync.Mutex
	users map[string]userentity.User
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{
		users: map[string]userentity.User{},
	}
}

func (f *FakeUserStore) CreateUser(_ context.Context, newUser userentity.User) (userentity.User, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if _, exists := f.users[newUser.Defined.Email]; exists {
		return userentity.User{}, mark.Message(userstorage.UserAlreadyExistsMark,
			"A user with this email already exists")
	}

	if newUser.Defined.ID == "" {
		newUser.Defined.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	newUser.Defined.CreatedAt = now
	newUser.Defined.UpdatedAt = now

	f.users[newUser.Defined.Email] = newUser
	return newUser, nil
}

func (f *FakeUserStore) GetUserByEmail(_ context.Context, email string) (userentity.User, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	user, exists := f.users[email]
	if !exists {
		return userentity.User{}, mark.Message(userstorage.UserNotFoundMark, "No user found for this email")
	}

	return user, nil
}

func (f *FakeUserStore) GetUserByID(_ context.Context, userID string) (userentity.User, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	for _, user := range f.users {
		if user.Defined.ID == userID {
			return user, nil
		}
	}

	return userentity.User{}, mark.Message(userstorage.UserNotFoundMark, "No user found for this ID")
}

func (f *FakeUserStore) GetUserByVerificationToken(_ context.Context, verificationToken string) (userentity.User, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if verificationToken == "" {
		return userentity.User{}, mark.Message(userstorage.UserNotFoundMark,
			"No user found for this verification token")
	}

	for _, user := range f.users {
		if user.Defined.VerificationToken == verificationToken {
			return user, nil
		}
	}

	return userentity.User{}, mark.Message(userstorage.UserNotFoundMark,
		"No user found for this verification token")
}

func (f *FakeUserStore) UpdateUser(_ context.Context, user userentity.User) (userentity.User, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if _, exists := f.users[user.Defined.Email]; !exists {
		return userentity.User{}, mark.Message(userstorage.UserNotFoundMark, "No user found for this email")
	}

	user.Defined.UpdatedAt = time.Now().UTC()

	f.users[user.Defined.Email] = user
	return user, nil
}

func EnsureUsers(store *FakeUserStore) {
	EnsureUser(store, VerifiedUser)
	EnsureUser(store, UnverifiedUser)
}

func EnsureUser(store *FakeUserStore, u User) {
	hashedPassword, err := password.Hash(u.Password)
	gomega.ExpectWithOffset(1, err).NotTo(gomega.HaveOccurred())

	entity, err := userentity.NewUser(u.Email, hashedPassword, u.Subscription, "seed-verification-token")
	gomega.ExpectWithOffset(1, err).NotTo(gomega.HaveOccurred())

	entity.Defined.ID = u.ID
	entity.Defined.Verified = u.Verified
	entity.Defined.VerificationToken = u.VerificationToken

	now := time.Now().UTC()
	entity.Defined.CreatedAt = now
	entity.Defined.UpdatedAt = now

	if u.Verified {
		// verified users are seeded mid-session
		entity.Defined.Token = TokenForUserID(u.ID)
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.users[u.Email] = entity
}

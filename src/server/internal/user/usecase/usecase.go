package userusecase

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/accountkeeper/accounts-be/src/server/internal/avatar"
	"github.com/accountkeeper/accounts-be/src/server/internal/errors/api"
	"github.com/accountkeeper/accounts-be/src/server/internal/errors/auth"
	userentity "github.com/accountkeeper/accounts-be/src/server/internal/user/entity"
	usererrors "github.com/accountkeeper/accounts-be/src/server/internal/user/errors"
	"github.com/accountkeeper/accounts-be/src/server/internal/user/password"
	"github.com/accountkeeper/accounts-be/src/server/internal/user/session"
	userstorage "github.com/accountkeeper/accounts-be/src/server/internal/user/storage"
	"github.com/accountkeeper/accounts-be/src/shared/email"
	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/google/uuid"
)

const (
	bearerPrefix = "Bearer "

	wrongCredentialsMessage = "Email or password is wrong"
	notAuthorizedMessage    = "Not authorized"
)

type RegisterParams struct {
	Email        string
	Password     string
	Subscription userentity.Subscription
}

type Usecase struct {
	store      userentity.Store
	dispatcher email.Dispatcher
	signer     session.Signer
	resizer    avatar.Resizer
	files      avatar.FileStore
}

func NewUsecase(
	store userentity.Store,
	dispatcher email.Dispatcher,
	signer session.Signer,
	resizer avatar.Resizer,
	files avatar.FileStore,
) Usecase {
	return Usecase{
		store:      store,
		dispatcher: dispatcher,
		signer:     signer,
		resizer:    resizer,
		files:      files,
	}
}

func (u Usecase) Register(ctx context.Context, params RegisterParams) (userentity.User, *api.Error) {
	hashedPassword, err := password.Hash(params.Password)
	if err != nil {
		return userentity.User{}, api.CommitError(err,
			api.DefaultErrorCode,
			"The account could not be created")
	}

	newUser, err := userentity.NewUser(params.Email, hashedPassword, params.Subscription, uuid.NewString())
	if err != nil {
		return userentity.User{}, api.CommitError(err,
			usererrors.BadSubscriptionCode,
			"The subscription type is not recognized")
	}

	createdUser, err := u.store.CreateUser(ctx, newUser)
	if err != nil {
		switch {
		case markers.Is(err, userstorage.UserAlreadyExistsMark):
			return userentity.User{}, api.CommitError(err,
				usererrors.ExistingEmailCode,
				"This email is already in use")
		default:
			return userentity.User{}, api.CommitError(err,
				api.DefaultErrorCode,
				"The account could not be created")
		}
	}

	// best effort notification - a failed dispatch never rolls back the account
	dispatchErr := u.dispatcher.DispatchVerification(email.VerificationJobParams{
		Recipient:         createdUser.Defined.Email,
		VerificationToken: createdUser.Defined.VerificationToken,
	})
	if dispatchErr != nil {
		log.WithField("email", createdUser.Defined.Email).
			WithError(dispatchErr).
			Error("Failed to dispatch the verification email")
	}

	return createdUser, nil
}

func (u Usecase) VerifyEmail(ctx context.Context, verificationToken string) *api.Error {
	user, err := u.store.GetUserByVerificationToken(ctx, verificationToken)
	if err != nil {
		switch {
		case markers.Is(err, userstorage.UserNotFoundMark):
			// an already consumed token is indistinguishable from an invalid one
			return api.CommitError(err,
				usererrors.VerificationNotFoundCode,
				"User was not found or email is already verified")
		default:
			return api.CommitError(err,
				api.DefaultErrorCode,
				"The email could not be verified")
		}
	}

	user.Defined.VerificationToken = ""
	user.Defined.Verified = true

	if _, err := u.store.UpdateUser(ctx, user); err != nil {
		return api.CommitError(err,
			api.DefaultErrorCode,
			"The email could not be verified")
	}

	return nil
}

func (u Usecase) ResendVerificationEmail(ctx context.Context, recipient string) *api.Error {
	user, err := u.store.GetUserByEmail(ctx, recipient)
	if err != nil {
		switch {
		case markers.Is(err, userstorage.UserNotFoundMark):
			return api.CommitError(err, usererrors.NoAccountCode, "User not found")
		default:
			return api.CommitError(err,
				api.DefaultErrorCode,
				"The verification email could not be sent")
		}
	}

	if user.Defined.Verified {
		return api.CommitError(
			errors.New("User requested a verification resend after verifying"),
			usererrors.AlreadyVerifiedCode,
			"Email is already verified")
	}

	dispatchErr := u.dispatcher.DispatchVerification(email.VerificationJobParams{
		Recipient:         user.Defined.Email,
		VerificationToken: user.Defined.VerificationToken,
	})
	if dispatchErr != nil {
		return api.CommitError(dispatchErr,
			api.DefaultErrorCode,
			"The verification email could not be sent")
	}

	return nil
}

func (u Usecase) Login(ctx context.Context, userEmail string, plaintextPassword string) (userentity.User, *api.Error) {
	user, err := u.store.GetUserByEmail(ctx, userEmail)
	if err != nil {
		switch {
		case markers.Is(err, userstorage.UserNotFoundMark):
			// deliberately the same message as a password mismatch
			// so that account existence can't be probed
			return userentity.User{}, api.CommitError(err,
				auth.WrongCredentialsCode,
				wrongCredentialsMessage)
		default:
			return userentity.User{}, api.CommitError(err,
				api.DefaultErrorCode,
				"Login could not be completed")
		}
	}

	if !user.Defined.Verified {
		return userentity.User{}, api.CommitError(
			errors.New("User attempted to log in before verifying their email"),
			auth.UnverifiedAccountCode,
			"Email does not verified")
	}

	if !password.Matches(plaintextPassword, user.Defined.Password) {
		return userentity.User{}, api.CommitError(
			errors.New("Password doesn't match the stored digest"),
			auth.WrongCredentialsCode,
			wrongCredentialsMessage)
	}

	token, err := u.signer.TokenForUserID(user.Defined.ID)
	if err != nil {
		return userentity.User{}, api.CommitError(err,
			api.DefaultErrorCode,
			"Login could not be completed")
	}

	user.Defined.Token = token

	updatedUser, err := u.store.UpdateUser(ctx, user)
	if err != nil {
		return userentity.User{}, api.CommitError(err,
			api.DefaultErrorCode,
			"Login could not be completed")
	}

	return updatedUser, nil
}

func (u Usecase) Logout(ctx context.Context, authHeader string) *api.Error {
	user, apiErr := u.resolveUser(ctx, authHeader)
	if apiErr != nil {
		return api.WrapError(apiErr, "Failed to resolve the user to log out")
	}

	user.Defined.Token = ""

	if _, err := u.store.UpdateUser(ctx, user); err != nil {
		return api.CommitError(err, api.DefaultErrorCode, "Logout could not be completed")
	}

	return nil
}

func (u Usecase) CurrentUser(ctx context.Context, authHeader string) (userentity.User, *api.Error) {
	user, apiErr := u.resolveUser(ctx, authHeader)
	if apiErr != nil {
		return userentity.User{}, api.WrapError(apiErr, "Failed to resolve the current user")
	}

	return user, nil
}

func (u Usecase) UpdateAvatar(ctx context.Context, authHeader string, filename string, content []byte) (string, *api.Error) {
	user, apiErr := u.resolveUser(ctx, authHeader)
	if apiErr != nil {
		return "", api.WrapError(apiErr, "Failed to resolve the user for the avatar update")
	}

	if filename == "" || len(content) == 0 {
		return "", api.CommitError(
			errors.New("No file content attached to the avatar update"),
			usererrors.NoAvatarFileCode,
			"Please provide an avatar image")
	}

	resized, err := u.resizer.ResizeSquare(content, filename, avatar.Size)
	if err != nil {
		return "", api.CommitError(err,
			api.DefaultErrorCode,
			"The avatar image could not be processed")
	}

	avatarPath := path.Join("avatars", fmt.Sprintf("%s_%s", user.Defined.ID, filepath.Base(filename)))

	if err := u.files.WriteFile(ctx, avatarPath, resized); err != nil {
		return "", api.CommitError(err,
			api.DefaultErrorCode,
			"The avatar image could not be stored")
	}

	// the gravatar default is externally hosted and is never deleted
	previousAvatar := user.Defined.AvatarURL
	if !userentity.IsGravatarURL(previousAvatar) && previousAvatar != avatarPath {
		if err := u.files.DeleteFile(ctx, previousAvatar); err != nil {
			log.WithField("avatar_path", previousAvatar).
				WithError(err).
				Warn("Failed to delete the previous avatar file")
		}
	}

	user.Defined.AvatarURL = avatarPath

	if _, err := u.store.UpdateUser(ctx, user); err != nil {
		return "", api.CommitError(err,
			api.DefaultErrorCode,
			"The avatar could not be updated")
	}

	return avatarPath, nil
}

func (u Usecase) UpdateSubscription(ctx context.Context, authHeader string, subscription userentity.Subscription) (userentity.User, *api.Error) {
	user, apiErr := u.resolveUser(ctx, authHeader)
	if apiErr != nil {
		return userentity.User{}, api.WrapError(apiErr, "Failed to resolve the user for the subscription update")
	}

	if !subscription.Valid() {
		return userentity.User{}, api.CommitError(
			errors.Errorf("Subscription type %s is not recognized", subscription),
			usererrors.BadSubscriptionCode,
			"The subscription type is not recognized")
	}

	user.Defined.Subscription = subscription

	updatedUser, err := u.store.UpdateUser(ctx, user)
	if err != nil {
		return userentity.User{}, api.CommitError(err,
			api.DefaultErrorCode,
			"The subscription could not be updated")
	}

	return updatedUser, nil
}

// resolveUser maps a bearer token back to its user. The token must also
// match the one stored on the record, which keeps one active session per user.
func (u Usecase) resolveUser(ctx context.Context, authHeader string) (userentity.User, *api.Error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return userentity.User{}, api.CommitError(
			errors.New("Auth header doesn't have the bearer prefix"),
			auth.BadAuthorizationHeaderCode,
			"Authorization header has unexpected shape")
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)

	userID, err := u.signer.UserIDForToken(token)
	if err != nil {
		return userentity.User{}, api.CommitError(err,
			auth.NotAuthorizedCode,
			notAuthorizedMessage)
	}

	user, err := u.store.GetUserByID(ctx, userID)
	if err != nil {
		return userentity.User{}, api.CommitError(err,
			auth.NotAuthorizedCode,
			notAuthorizedMessage)
	}

	if user.Defined.Token != token {
		return userentity.User{}, api.CommitError(
			errors.New("Presented token doesn't match the stored session token"),
			auth.NotAuthorizedCode,
			notAuthorizedMessage)
	}

	return user, nil
}

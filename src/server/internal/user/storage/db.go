package userstorage

import (
	"context"
	"time"

	userentity "github.com/accountkeeper/accounts-be/src/server/internal/user/entity"
	dynamolib "github.com/accountkeeper/accounts-be/src/shared/lib/dynamo"
	"github.com/accountkeeper/accounts-be/src/shared/lib/errors/mark"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/guregu/dynamo"
)

const (
	UsersTable = "Users"

	emailKey             = "email"
	idKey                = "id"
	verificationTokenKey = "verificationToken"

	IDIndex                = "id-index"
	VerificationTokenIndex = "verification-token-index"

	// email is the hash key, so these conditions are the unique-email
	// backstop for racing registrations
	newUserCondition      = "attribute_not_exists(" + emailKey + ")"
	existingUserCondition = "attribute_exists(" + emailKey + ")"
)

var _ userentity.Store = DB{}

type DB struct {
	dynamoDB dynamolib.DynamoDBWrapper
}

func NewDB(dynamoDB dynamolib.DynamoDBWrapper) DB {
	return DB{
		dynamoDB: dynamoDB,
	}
}

func (d DB) CreateUser(ctx context.Context, newUser userentity.User) (userentity.User, error) {
	if newUser.Defined.Email == "" {
		err := errors.New("User email is empty")
		return userentity.User{}, mark.Wrap(err, DefaultErrorMark, "No email provided to create user")
	}

	now := time.Now().UTC()
	newUser.Defined.ID = uuid.NewString()
	newUser.Defined.CreatedAt = now
	newUser.Defined.UpdatedAt = now

	err := d.putUser(ctx, newUser, false)
	if err != nil {
		if conditionalCheckFailed(err) {
			return userentity.User{}, mark.Wrap(err,
				UserAlreadyExistsMark,
				"Cannot create: a user with this email already exists")
		}

		return userentity.User{}, errors.Wrap(err, "Failed to put user into DB")
	}

	return newUser, nil
}

func (d DB) GetUserByEmail(ctx context.Context, email string) (userentity.User, error) {
	if email == "" {
		err := errors.New("User email is empty")
		return userentity.User{}, mark.Wrap(err, UserNotFoundMark, "No email provided to fetch user")
	}

	value := dbUser{}
	err := d.dynamoDB.Table(UsersTable).
		Get(emailKey, email).
		Consistent(true).
		OneWithContext(ctx, &value)

	return handleGetResult(value, err)
}

func (d DB) GetUserByID(ctx context.Context, userID string) (userentity.User, error) {
	if userID == "" {
		err := errors.New("User ID is empty")
		return userentity.User{}, mark.Wrap(err, UserNotFoundMark, "No ID provided to fetch user")
	}

	value := dbUser{}
	err := d.dynamoDB.Table(UsersTable).
		Get(idKey, userID).
		Index(IDIndex).
		OneWithContext(ctx, &value)

	return handleGetResult(value, err)
}

func (d DB) GetUserByVerificationToken(ctx context.Context, verificationToken string) (userentity.User, error) {
	if verificationToken == "" {
		err := errors.New("Verification token is empty")
		return userentity.User{}, mark.Wrap(err, UserNotFoundMark, "No token provided to fetch user")
	}

	value := dbUser{}
	err := d.dynamoDB.Table(UsersTable).
		Get(verificationTokenKey, verificationToken).
		Index(VerificationTokenIndex).
		OneWithContext(ctx, &value)

	return handleGetResult(value, err)
}

func (d DB) UpdateUser(ctx context.Context, user userentity.User) (userentity.User, error) {
	if user.Defined.Email == "" {
		err := errors.New("User email is empty")
		return userentity.User{}, mark.Wrap(err, UserNotFoundMark, "No email provided to update user")
	}

	user.Defined.UpdatedAt = time.Now().UTC()

	err := d.putUser(ctx, user, true)
	if err != nil {
		if conditionalCheckFailed(err) {
			return userentity.User{}, mark.Wrap(err,
				UserNotFoundMark,
				"Cannot update: user with this email cannot be found")
		}

		return userentity.User{}, errors.Wrap(err, "Failed to put user into DB")
	}

	return user, nil
}

// whole document puts, same as the original's document store writes -
// concurrent updates to the same user are last write wins
func (d DB) putUser(ctx context.Context, user userentity.User, expectUserExists bool) error {
	dbObject, err := user.ToMap()
	if err != nil {
		return mark.Wrap(err, UserUnmarshalMark, "Failed to convert user object to a map")
	}

	putExpr := d.dynamoDB.Table(UsersTable).Put(dbObject)

	if expectUserExists {
		putExpr = putExpr.If(existingUserCondition)
	} else {
		putExpr = putExpr.If(newUserCondition)
	}

	return putExpr.RunWithContext(ctx)
}

func handleGetResult(value dbUser, err error) (userentity.User, error) {
	if err != nil {
		switch {
		case errors.Is(err, dynamo.ErrNotFound):
			return userentity.User{}, mark.Wrap(err, UserNotFoundMark, "User for this key couldn't be found")
		default:
			return userentity.User{}, mark.Wrap(err, DefaultErrorMark, "Failed to fetch user due to unknown data store error")
		}
	}

	user := userentity.User{}
	if err := user.FromMap(value); err != nil {
		return userentity.User{}, mark.Wrap(err, UserUnmarshalMark, "Failed to unmarshal user into its entity form")
	}

	return user, nil
}

func conditionalCheckFailed(err error) bool {
	var conditionalErr *dynamodb.ConditionalCheckFailedException
	return errors.As(err, &conditionalErr)
}

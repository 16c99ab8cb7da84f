package usergateway

import (
	"io"
	"net/http"
	"time"

	"github.com/accountkeeper/accounts-be/src/server/internal/errors/api"
	"github.com/accountkeeper/accounts-be/src/server/internal/errors/gateway"
	"github.com/accountkeeper/accounts-be/src/server/internal/lib/request"
	"github.com/accountkeeper/accounts-be/src/server/internal/lib/validation"
	userentity "github.com/accountkeeper/accounts-be/src/server/internal/user/entity"
	usererrors "github.com/accountkeeper/accounts-be/src/server/internal/user/errors"
	userusecase "github.com/accountkeeper/accounts-be/src/server/internal/user/usecase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type registerRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Subscription string `json:"subscription" validate:"omitempty,oneof=starter pro business"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type resendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type subscriptionRequest struct {
	Subscription string `json:"subscription" validate:"required,oneof=starter pro business"`
}

type UserJSON struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

type RegisteredUserJSON struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL"`
}

type RegisterResponse struct {
	User RegisteredUserJSON `json:"user"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserJSON `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatarURL"`
}

// PublicUserJSON is the sanitized full document shape - the password digest
// and session fields never leave the server
type PublicUserJSON struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL"`
	Verified     bool   `json:"verified"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

type Gateway struct {
	usecase   userusecase.Usecase
	validator validation.Validator
}

func NewGateway(usecase userusecase.Usecase) Gateway {
	return Gateway{
		usecase:   usecase,
		validator: validation.NewValidator(),
	}
}

func (g Gateway) Register(c echo.Context) error {
	ctx := request.Context(c)

	params := registerRequest{}
	if apiErr := g.bindAndCheck(c, &params); apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	newUser, apiErr := g.usecase.Register(ctx, userusecase.RegisterParams{
		Email:        params.Email,
		Password:     params.Password,
		Subscription: userentity.Subscription(params.Subscription),
	})
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		User: RegisteredUserJSON{
			Email:        newUser.Defined.Email,
			Subscription: string(newUser.Defined.Subscription),
			AvatarURL:    newUser.Defined.AvatarURL,
		},
	})
}

func (g Gateway) VerifyEmail(c echo.Context, verificationToken string) error {
	ctx := request.Context(c)

	if apiErr := g.usecase.VerifyEmail(ctx, verificationToken); apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Verification successful"})
}

func (g Gateway) ResendVerificationEmail(c echo.Context) error {
	ctx := request.Context(c)

	params := resendVerificationRequest{}
	if apiErr := g.bindAndCheck(c, &params); apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	if apiErr := g.usecase.ResendVerificationEmail(ctx, params.Email); apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Verification email was sent successfully"})
}

func (g Gateway) Login(c echo.Context) error {
	ctx := request.Context(c)

	params := loginRequest{}
	if apiErr := g.bindAndCheck(c, &params); apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	user, apiErr := g.usecase.Login(ctx, params.Email, params.Password)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: user.Defined.Token,
		User: UserJSON{
			Email:        user.Defined.Email,
			Subscription: string(user.Defined.Subscription),
		},
	})
}

func (g Gateway) Logout(c echo.Context) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	if apiErr := g.usecase.Logout(ctx, authHeader); apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.NoContent(http.StatusNoContent)
}

func (g Gateway) GetCurrent(c echo.Context) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	user, apiErr := g.usecase.CurrentUser(ctx, authHeader)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, UserJSON{
		Email:        user.Defined.Email,
		Subscription: string(user.Defined.Subscription),
	})
}

func (g Gateway) UpdateAvatar(c echo.Context) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	filename, content, apiErr := avatarUpload(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	avatarURL, apiErr := g.usecase.UpdateAvatar(ctx, authHeader, filename, content)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, AvatarResponse{AvatarURL: avatarURL})
}

func (g Gateway) UpdateSubscription(c echo.Context) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	params := subscriptionRequest{}
	if apiErr := g.bindAndCheck(c, &params); apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	user, apiErr := g.usecase.UpdateSubscription(ctx, authHeader, userentity.Subscription(params.Subscription))
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, PublicUserJSON{
		ID:           user.Defined.ID,
		Email:        user.Defined.Email,
		Subscription: string(user.Defined.Subscription),
		AvatarURL:    user.Defined.AvatarURL,
		Verified:     user.Defined.Verified,
		CreatedAt:    user.Defined.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.Defined.UpdatedAt.Format(time.RFC3339),
	})
}

func (g Gateway) bindAndCheck(c echo.Context, params any) *api.Error {
	if err := c.Bind(params); err != nil {
		err = errors.Wrap(err, "Failed to bind request body")
		return api.CommitError(err,
			usererrors.BadUserDataCode,
			"The request body received was malformed")
	}

	if violations := g.validator.Check(params); len(violations) > 0 {
		described := validation.Describe(violations)
		return api.CommitError(
			errors.Errorf("Request validation failed: %s", described),
			usererrors.BadUserDataCode,
			described)
	}

	return nil
}

func avatarUpload(c echo.Context) (string, []byte, *api.Error) {
	noFileError := func(err error) *api.Error {
		return api.CommitError(err,
			usererrors.NoAvatarFileCode,
			"Please provide an avatar image")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return "", nil, noFileError(errors.Wrap(err, "No avatar file attached to the request"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, noFileError(errors.Wrap(err, "Failed to open the uploaded avatar file"))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, noFileError(errors.Wrap(err, "Failed to read the uploaded avatar file"))
	}

	return fileHeader.Filename, content, nil
}

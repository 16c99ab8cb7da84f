package application

import (
	"net/http"
	"path"

	"github.com/accountkeeper/accounts-be/src/server/internal/avatar"
	usergateway "github.com/accountkeeper/accounts-be/src/server/internal/user/gateway"
	usersession "github.com/accountkeeper/accounts-be/src/server/internal/user/session"
	userstorage "github.com/accountkeeper/accounts-be/src/server/internal/user/storage"
	userusecase "github.com/accountkeeper/accounts-be/src/server/internal/user/usecase"
	"github.com/accountkeeper/accounts-be/src/shared/config"
	"github.com/accountkeeper/accounts-be/src/shared/email"
	dynamolib "github.com/accountkeeper/accounts-be/src/shared/lib/dynamo"
	"github.com/accountkeeper/accounts-be/src/shared/lib/rabbitmq"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cockroachdb/errors"
	"github.com/guregu/dynamo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PATCH  HTTPMethod = "PATCH"
	DELETE HTTPMethod = "DELETE"
)

type App struct {
	echo *echo.Echo
	port string
}

type Config struct {
	DynamoConfig       config.Dynamo
	RabbitMQURL        string
	RabbitMQQueueName  string
	CORSAllowedOrigins []string
	TokenSecret        string
	PublicPath         string
	Port               string
	Log                bool
}

func NewApp(config Config) App {
	e := echo.New()

	if config.Log {
		e.Use(middleware.Logger())
	}

	corsMiddleware := makeCorsMiddleware(config)

	handleRoute := func(method HTTPMethod, path string, handlerFunc echo.HandlerFunc) {
		params := func() (string, echo.HandlerFunc, echo.MiddlewareFunc) {
			return path, handlerFunc, corsMiddleware
		}

		e.OPTIONS(params())

		switch method {
		case GET:
			e.GET(params())
		case POST:
			e.POST(params())
		case PATCH:
			e.PATCH(params())
		case DELETE:
			e.DELETE(params())
		default:
			panic("unhandled http method!")
		}
	}

	dynamoDB := makeDynamoDB(config.DynamoConfig)
	rabbitmqPublisher := makeRabbitMQPublisher(config)
	userGateway := makeUserGateway(config, dynamoDB, rabbitmqPublisher)

	// uploaded avatars are served straight from the public dir
	e.Static("/avatars", path.Join(config.PublicPath, "avatars"))

	// health check
	handleRoute(GET, "/health-check", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// account routes
	handleRoute(POST, "/users/register", userGateway.Register)
	handleRoute(GET, "/users/verify/:verificationToken", func(c echo.Context) error {
		verificationToken := c.Param("verificationToken")
		return userGateway.VerifyEmail(c, verificationToken)
	})
	handleRoute(POST, "/users/verify", userGateway.ResendVerificationEmail)
	handleRoute(POST, "/users/login", userGateway.Login)
	handleRoute(POST, "/users/logout", userGateway.Logout)
	handleRoute(GET, "/users/current", userGateway.GetCurrent)
	handleRoute(PATCH, "/users/avatars", userGateway.UpdateAvatar)
	handleRoute(PATCH, "/users/subscription", userGateway.UpdateSubscription)

	return App{
		echo: e,
		port: config.Port,
	}
}

func (a *App) Start() error {
	err := a.echo.Start(a.port)
	if err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "Couldn't start echo server")
	}

	return nil
}

func (a *App) Stop() error {
	err := a.echo.Close()
	if err != nil {
		return errors.Wrap(err, "Failed to stop echo server")
	}

	return nil
}

func makeRabbitMQPublisher(config Config) *rabbitmq.QueuePublisher {
	publisher, err := rabbitmq.NewQueuePublisher(config.RabbitMQURL, config.RabbitMQQueueName)
	if err != nil {
		panic(errors.Wrap(err, "Failed to create rabbitMQ publisher"))
	}

	return publisher
}

func makeDynamoDB(dynamoConfig config.Dynamo) dynamolib.DynamoDBWrapper {
	dbSession := session.Must(session.NewSession())

	var dbConfig *aws.Config

	switch t := dynamoConfig.(type) {
	case config.ProdDynamo:
		dbConfig = aws.NewConfig().
			WithCredentials(credentials.NewStaticCredentials(
				t.AccessKeyID,
				t.SecretAccessKey,
				"",
			)).
			WithRegion(t.Region)

	case config.LocalDynamo:
		dbConfig = aws.NewConfig().
			WithCredentials(credentials.NewStaticCredentials(
				t.AccessKeyID,
				t.SecretAccessKey,
				"",
			)).
			WithRegion(t.Region).
			WithEndpoint(t.Host)

	default:
		panic("Unexpected dynamo config type")
	}

	db := dynamo.New(dbSession, dbConfig)
	return dynamolib.NewDynamoDBWrapper(db)
}

func makeUserGateway(config Config, dynamoDB dynamolib.DynamoDBWrapper, publisher *rabbitmq.QueuePublisher) usergateway.Gateway {
	userDB := userstorage.NewDB(dynamoDB)
	dispatcher := email.NewQueueDispatcher(publisher)
	signer := usersession.NewSigner(config.TokenSecret)

	userUsecase := userusecase.NewUsecase(
		userDB,
		dispatcher,
		signer,
		avatar.ImagingResizer{},
		avatar.NewPublicDirStore(config.PublicPath),
	)

	return usergateway.NewGateway(userUsecase)
}

func makeCorsMiddleware(config Config) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: config.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	})
}

package main

import (
	"strings"

	"github.com/accountkeeper/accounts-be/src/server/application"
	"github.com/accountkeeper/accounts-be/src/shared/config"
	"github.com/accountkeeper/accounts-be/src/shared/lib/env"
	"github.com/accountkeeper/accounts-be/src/shared/values/dev"
	"github.com/accountkeeper/accounts-be/src/shared/values/envvar"
	"github.com/accountkeeper/accounts-be/src/shared/values/prod"
)

func main() {
	var appConfig application.Config

	switch env.Get() {
	case env.Production:
		commaSeparatedOrigins := envvar.MustGet(envvar.ALLOWED_FE_ORIGINS)
		allowedOrigins := strings.Split(commaSeparatedOrigins, ",")

		appConfig = application.Config{
			DynamoConfig: config.ProdDynamo{
				AccessKeyID:     envvar.MustGet(envvar.AWS_ACCESS_KEY_ID),
				SecretAccessKey: envvar.MustGet(envvar.AWS_SECRET_ACCESS_KEY),
				Region:          prod.DynamoDBRegion,
			},
			RabbitMQURL:        envvar.MustGet(envvar.RABBITMQ_URL),
			RabbitMQQueueName:  envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME),
			CORSAllowedOrigins: allowedOrigins,
			TokenSecret:        envvar.MustGet(envvar.SECRET_KEY),
			PublicPath:         envvar.MustGet(envvar.PUBLIC_PATH),
			Port:               ":5000",
			Log:                true,
		}
	case env.Development:
		appConfig = application.Config{
			DynamoConfig:       dev.DynamoConfig,
			RabbitMQURL:        dev.RabbitMQHost,
			RabbitMQQueueName:  dev.RabbitMQQueueName,
			CORSAllowedOrigins: []string{"*"},
			TokenSecret:        dev.TokenSecret,
			PublicPath:         dev.PublicPath,
			Port:               ":5000",
			Log:                true,
		}

	default:
		panic("Unexpected environment")
	}

	app := application.NewApp(appConfig)
	if err := app.Start(); err != nil {
		panic(err)
	}
}

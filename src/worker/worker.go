package main

import (
	"github.com/accountkeeper/accounts-be/src/shared/lib/env"
	"github.com/accountkeeper/accounts-be/src/shared/values/dev"
	"github.com/accountkeeper/accounts-be/src/shared/values/envvar"
	"github.com/accountkeeper/accounts-be/src/worker/application"
	"github.com/accountkeeper/accounts-be/src/worker/internal/provider/elasticemail"
)

func main() {
	var appConfig application.Config

	switch env.Get() {
	case env.Production:
		appConfig = application.Config{
			RabbitMQURL:       envvar.MustGet(envvar.RABBITMQ_URL),
			RabbitMQQueueName: envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME),
			EmailAPIHost:      elasticemail.DefaultAPIHost,
			EmailAPIKey:       envvar.MustGet(envvar.EMAIL_API_KEY),
			EmailFromAddress:  envvar.MustGet(envvar.EMAIL_FROM_ADDRESS),
			BaseURL:           envvar.MustGet(envvar.BASE_URL),
		}

	case env.Development:
		appConfig = application.Config{
			RabbitMQURL:       dev.RabbitMQHost,
			RabbitMQQueueName: dev.RabbitMQQueueName,
			EmailAPIHost:      elasticemail.DefaultAPIHost,
			EmailAPIKey:       dev.EmailAPIKey,
			EmailFromAddress:  dev.EmailFromAddress,
			BaseURL:           dev.BaseURL,
		}

	default:
		panic("Unexpected environment")
	}

	app := application.NewApp(appConfig)
	if err := app.Start(); err != nil {
		panic(err)
	}
}

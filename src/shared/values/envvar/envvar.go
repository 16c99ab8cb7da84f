package envvar

import (
	"fmt"
	"os"
)

const (
	ALLOWED_FE_ORIGINS    = "ALLOWED_FE_ORIGINS"
	AWS_ACCESS_KEY_ID     = "AWS_ACCESS_KEY_ID"
	AWS_SECRET_ACCESS_KEY = "AWS_SECRET_ACCESS_KEY"
	SECRET_KEY            = "SECRET_KEY"
	EMAIL_API_KEY         = "EMAIL_API_KEY"
	EMAIL_FROM_ADDRESS    = "EMAIL_FROM_ADDRESS"
	BASE_URL              = "BASE_URL"
	RABBITMQ_URL          = "RABBITMQ_URL"
	RABBITMQ_QUEUE_NAME   = "RABBITMQ_QUEUE_NAME"
	PUBLIC_PATH           = "PUBLIC_PATH"
)

func MustGet(key string) string {
	val, isSet := os.LookupEnv(key)
	if !isSet {
		panic(fmt.Sprintf("No env variable found for key %s", key))
	}

	if val == "" {
		panic(fmt.Sprintf("Env variable is empty for key %s", key))
	}

	return val
}

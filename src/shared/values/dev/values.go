package dev

import (
	"github.com/accountkeeper/accounts-be/src/shared/config"
)

// DynamoDB
const (
	DynamoAccessKeyID     = "local"
	DynamoSecretAccessKey = "local"
	DynamoDBHost          = "http://localhost:8000"
	DynamoDBRegion        = "localhost"
)

var DynamoConfig = config.LocalDynamo{
	AccessKeyID:     DynamoAccessKeyID,
	SecretAccessKey: DynamoSecretAccessKey,
	Region:          DynamoDBRegion,
	Host:            DynamoDBHost,
}

// RabbitMQ
const (
	RabbitMQHost      = "amqp://localhost:5672"
	RabbitMQQueueName = "accounts-emails-dev"
)

// Email
const (
	EmailAPIKey      = "dev-not-a-real-key"
	EmailFromAddress = "no-reply@accountkeeper.local"
	BaseURL          = "http://localhost:5000"
)

// Auth
const (
	TokenSecret = "dev-token-secret"
)

// Files
const (
	PublicPath = "./public"
)

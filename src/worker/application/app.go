package application

import (
	"github.com/accountkeeper/accounts-be/src/worker/internal/application/jobs/job_router"
	"github.com/accountkeeper/accounts-be/src/worker/internal/application/jobs/verification_email"
	"github.com/accountkeeper/accounts-be/src/worker/internal/application/worker"
	"github.com/accountkeeper/accounts-be/src/worker/internal/provider/elasticemail"
	"github.com/cockroachdb/errors"
	"github.com/rabbitmq/amqp091-go"
)

func must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}

	return t
}

type App struct {
	worker worker.QueueWorker
}

type Config struct {
	RabbitMQURL       string
	RabbitMQQueueName string

	EmailAPIHost     string
	EmailAPIKey      string
	EmailFromAddress string
	BaseURL          string
}

func NewApp(config Config) App {
	consumerConn := must(amqp091.Dial(config.RabbitMQURL))

	return App{
		worker: newWorker(config, consumerConn),
	}
}

func (a *App) Start() error {
	err := a.worker.Start()
	if err != nil {
		return errors.Wrap(err, "Failed to start worker")
	}

	return nil
}

func (a *App) Stop() {
	a.worker.Stop()
}

func newWorker(config Config, consumerConn *amqp091.Connection) worker.QueueWorker {
	queueWorker := must(worker.NewQueueWorkerFromConnection(
		consumerConn,
		config.RabbitMQQueueName,
		newJobRouter(config)))

	return queueWorker
}

func newJobRouter(config Config) job_router.JobRouter {
	sender := elasticemail.NewClient(config.EmailAPIHost, config.EmailAPIKey)

	return job_router.NewJobRouter(
		verification_email.NewJobHandler(sender, config.BaseURL, config.EmailFromAddress))
}

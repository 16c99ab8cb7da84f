package job_router

import (
	"github.com/accountkeeper/accounts-be/src/worker/internal/application/jobs/verification_email"
	"github.com/cockroachdb/errors"
	"github.com/rabbitmq/amqp091-go"
)

type JobRouter struct {
	verificationEmailHandler verification_email.JobHandler
}

func NewJobRouter(verificationEmailHandler verification_email.JobHandler) JobRouter {
	return JobRouter{
		verificationEmailHandler: verificationEmailHandler,
	}
}

func (j JobRouter) HandleMessage(message amqp091.Delivery) error {
	switch message.Type {
	case verification_email.JobType:
		if err := j.verificationEmailHandler.HandleVerificationEmailJob(message.Body); err != nil {
			return errors.Wrap(err, verification_email.ErrorMessage)
		}

		return nil

	default:
		return errors.Errorf("Unrecognized message type: %s", message.Type)
	}
}

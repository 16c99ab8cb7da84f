package email

import (
	"encoding/json"

	"github.com/accountkeeper/accounts-be/src/shared/lib/rabbitmq"
	"github.com/cockroachdb/errors"
	"github.com/rabbitmq/amqp091-go"
)

// Dispatcher submits verification emails for delivery. Delivery is
// best effort - callers respond to the user without waiting on it.
type Dispatcher interface {
	DispatchVerification(params VerificationJobParams) error
}

var _ Dispatcher = QueueDispatcher{}

type QueueDispatcher struct {
	publisher rabbitmq.Publisher
}

func NewQueueDispatcher(publisher rabbitmq.Publisher) QueueDispatcher {
	return QueueDispatcher{
		publisher: publisher,
	}
}

func (q QueueDispatcher) DispatchVerification(params VerificationJobParams) error {
	if params.Recipient == "" {
		return errors.New("No recipient provided for the verification email")
	}

	if params.VerificationToken == "" {
		return errors.New("No verification token provided for the verification email")
	}

	jobBody, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal verification email job")
	}

	job := amqp091.Publishing{
		Type: VerificationJobType,
		Body: jobBody,
	}

	if err := q.publisher.Publish(job); err != nil {
		return errors.Wrap(err, "Failed to publish verification email job")
	}

	return nil
}

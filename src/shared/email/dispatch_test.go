package email_test

import (
	"encoding/json"

	"github.com/accountkeeper/accounts-be/src/shared/email"
	"github.com/accountkeeper/accounts-be/src/shared/lib/rabbitmq"
	"github.com/cockroachdb/errors"
	"github.com/rabbitmq/amqp091-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ rabbitmq.Publisher = &recordingPublisher{}

type recordingPublisher struct {
	err       error
	published []amqp091.Publishing
}

func (r *recordingPublisher) Publish(msg amqp091.Publishing) error {
	if r.err != nil {
		return r.err
	}

	r.published = append(r.published, msg)
	return nil
}

var _ = Describe("QueueDispatcher", func() {
	var (
		publisher  *recordingPublisher
		dispatcher email.QueueDispatcher
	)

	BeforeEach(func() {
		publisher = &recordingPublisher{}
		dispatcher = email.NewQueueDispatcher(publisher)
	})

	Describe("With complete job params", func() {
		BeforeEach(func() {
			err := dispatcher.DispatchVerification(email.VerificationJobParams{
				Recipient:         "someone@accountkeeper.app",
				VerificationToken: "a-verification-token",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("publishes one message of the verification job type", func() {
			Expect(publisher.published).To(HaveLen(1))
			Expect(publisher.published[0].Type).To(Equal(email.VerificationJobType))
		})

		It("carries the params in the body", func() {
			params := email.VerificationJobParams{}
			err := json.Unmarshal(publisher.published[0].Body, &params)
			Expect(err).NotTo(HaveOccurred())

			Expect(params.Recipient).To(Equal("someone@accountkeeper.app"))
			Expect(params.VerificationToken).To(Equal("a-verification-token"))
		})
	})

	Describe("With incomplete job params", func() {
		It("rejects a missing recipient", func() {
			err := dispatcher.DispatchVerification(email.VerificationJobParams{
				VerificationToken: "a-verification-token",
			})
			Expect(err).To(HaveOccurred())
			Expect(publisher.published).To(BeEmpty())
		})

		It("rejects a missing verification token", func() {
			err := dispatcher.DispatchVerification(email.VerificationJobParams{
				Recipient: "someone@accountkeeper.app",
			})
			Expect(err).To(HaveOccurred())
			Expect(publisher.published).To(BeEmpty())
		})
	})

	Describe("When publishing fails", func() {
		It("surfaces the error", func() {
			publisher.err = errors.New("The queue is down")

			err := dispatcher.DispatchVerification(email.VerificationJobParams{
				Recipient:         "someone@accountkeeper.app",
				VerificationToken: "a-verification-token",
			})
			Expect(err).To(HaveOccurred())
		})
	})
})

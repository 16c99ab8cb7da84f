package job_router_test

import (
	"context"
	"encoding/json"

	"github.com/accountkeeper/accounts-be/src/shared/email"
	"github.com/accountkeeper/accounts-be/src/worker/internal/application/jobs/job_router"
	"github.com/accountkeeper/accounts-be/src/worker/internal/application/jobs/verification_email"
	"github.com/accountkeeper/accounts-be/src/worker/internal/provider/elasticemail"
	"github.com/rabbitmq/amqp091-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingSender struct {
	sent []elasticemail.TransactionalEmail
}

func (r *recordingSender) SendTransactional(_ context.Context, sentEmail elasticemail.TransactionalEmail) error {
	r.sent = append(r.sent, sentEmail)
	return nil
}

var _ = Describe("JobRouter", func() {
	var (
		sender *recordingSender
		router job_router.JobRouter
	)

	BeforeEach(func() {
		sender = &recordingSender{}
		router = job_router.NewJobRouter(verification_email.NewJobHandler(
			sender,
			"https://accounts.example.com",
			"no-reply@accountkeeper.app",
		))
	})

	It("routes verification email jobs to their handler", func() {
		body, err := json.Marshal(email.VerificationJobParams{
			Recipient:         "someone@accountkeeper.app",
			VerificationToken: "a-verification-token",
		})
		Expect(err).NotTo(HaveOccurred())

		err = router.HandleMessage(amqp091.Delivery{
			Type: verification_email.JobType,
			Body: body,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(sender.sent).To(HaveLen(1))
	})

	It("rejects messages of an unknown type", func() {
		err := router.HandleMessage(amqp091.Delivery{
			Type: "some-unknown-job",
		})
		Expect(err).To(HaveOccurred())
		Expect(sender.sent).To(BeEmpty())
	})
})

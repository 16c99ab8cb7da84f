package verification_email

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/accountkeeper/accounts-be/src/shared/email"
	"github.com/accountkeeper/accounts-be/src/worker/internal/provider/elasticemail"
	"github.com/cockroachdb/errors"
)

const JobType string = email.VerificationJobType
const ErrorMessage string = "Failed to send the verification email"

func NewJobHandler(sender elasticemail.Sender, baseURL string, fromAddress string) JobHandler {
	return JobHandler{
		sender:      sender,
		baseURL:     baseURL,
		fromAddress: fromAddress,
	}
}

type JobHandler struct {
	sender      elasticemail.Sender
	baseURL     string
	fromAddress string
}

func (j JobHandler) HandleVerificationEmailJob(message []byte) error {
	params, err := unmarshalMessage(message)
	if err != nil {
		return errors.Wrap(err, "Failed to unmarshal message JSON")
	}

	verificationEmail := j.buildEmail(params)

	err = j.sender.SendTransactional(context.Background(), verificationEmail)
	if err != nil {
		return errors.Wrapf(err, "Failed to submit the verification email for %s", params.Recipient)
	}

	return nil
}

func (j JobHandler) buildEmail(params email.VerificationJobParams) elasticemail.TransactionalEmail {
	verificationURL := fmt.Sprintf("%s/users/verify/%s", j.baseURL, params.VerificationToken)

	return elasticemail.TransactionalEmail{
		Recipients: elasticemail.Recipients{
			To: []string{params.Recipient},
		},
		Content: elasticemail.Content{
			Body: []elasticemail.BodyPart{
				{
					ContentType: "HTML",
					Charset:     "utf-8",
					Content:     fmt.Sprintf(`<a href="%s" target="_blank">Click here to verify email</a>`, verificationURL),
				},
				{
					ContentType: "PlainText",
					Charset:     "utf-8",
					Content:     fmt.Sprintf("Follow this link to verify email %s", verificationURL),
				},
			},
			From:    j.fromAddress,
			Subject: "Verificational Email",
		},
	}
}

func unmarshalMessage(message []byte) (email.VerificationJobParams, error) {
	params := email.VerificationJobParams{}
	err := json.Unmarshal(message, &params)
	if err != nil {
		return email.VerificationJobParams{}, errors.Wrap(err, "Failed to unmarshal message JSON")
	}

	if params.Recipient == "" {
		return email.VerificationJobParams{}, errors.New("Missing recipient")
	}

	if params.VerificationToken == "" {
		return email.VerificationJobParams{}, errors.New("Missing verification token")
	}

	return params, nil
}

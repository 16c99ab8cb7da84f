package email

// the queue message contract between the API server and the email worker

const VerificationJobType string = "verification_email"

type VerificationJobParams struct {
	Recipient         string `json:"recipient"`
	VerificationToken string `json:"verification_token"`
}

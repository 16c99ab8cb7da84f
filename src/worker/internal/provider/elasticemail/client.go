package elasticemail

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
)

const DefaultAPIHost = "https://api.elasticemail.com"

// field names follow the provider's v4 wire format

type BodyPart struct {
	ContentType string `json:"ContentType"`
	Charset     string `json:"Charset"`
	Content     string `json:"Content"`
}

type Recipients struct {
	To []string `json:"To"`
}

type Content struct {
	Body    []BodyPart `json:"Body"`
	From    string     `json:"From"`
	Subject string     `json:"Subject"`
}

type TransactionalEmail struct {
	Recipients Recipients `json:"Recipients"`
	Content    Content    `json:"Content"`
}

type Sender interface {
	SendTransactional(ctx context.Context, email TransactionalEmail) error
}

var _ Sender = Client{}

type Client struct {
	apiHost    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiHost string, apiKey string) Client {
	return Client{
		apiHost: apiHost,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c Client) SendTransactional(ctx context.Context, email TransactionalEmail) error {
	requestBody, err := json.Marshal(email)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal the email payload")
	}

	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.apiHost+"/v4/emails/transactional",
		bytes.NewReader(requestBody),
	)
	if err != nil {
		return errors.Wrap(err, "Failed to create the provider request")
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-ElasticEmail-ApiKey", c.apiKey)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return errors.Wrap(err, "Failed to submit the email to the provider")
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(response.Body, 1024))
		return errors.Errorf("Provider rejected the email: status %d: %s",
			response.StatusCode, string(responseBody))
	}

	return nil
}

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const DefaultBrevoURL = "https://api.brevo.com/v3/smtp/email"

// Mail is one outgoing HTML message.
type Mail struct {
	To         string
	Subject    string
	HTMLBody   string
	SenderName string
}

type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// BrevoMailer posts transactional mail to the Brevo HTTP API.
type BrevoMailer struct {
	apiKey     string
	apiURL     string
	from       string
	senderName string
	client     *http.Client
}

func NewBrevoMailer(apiKey, apiURL, from, senderName string) *BrevoMailer {
	if apiURL == "" {
		apiURL = DefaultBrevoURL
	}
	return &BrevoMailer{
		apiKey:     apiKey,
		apiURL:     apiURL,
		from:       from,
		senderName: senderName,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// WithClient swaps the HTTP client, mostly for tests.
func (b *BrevoMailer) WithClient(c *http.Client) *BrevoMailer {
	b.client = c
	return b
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoPayload struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func (b *BrevoMailer) Send(ctx context.Context, m Mail) error {
	if m.To == "" {
		return fmt.Errorf("mailer: empty recipient")
	}

	sender := brevoAddress{Email: b.from, Name: b.senderName}
	if m.SenderName != "" {
		sender.Name = m.SenderName
	}
	body, err := json.Marshal(brevoPayload{
		Sender:      sender,
		To:          []brevoAddress{{Email: m.To}},
		Subject:     m.Subject,
		HTMLContent: m.HTMLBody,
	})
	if err != nil {
		return fmt.Errorf("mailer: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("mailer: brevo returned status %d: %s", resp.StatusCode, string(raw))
	}

	var out struct {
		MessageID string `json:"messageId"`
	}
	_ = json.Unmarshal(raw, &out)
	slog.Info("mailer: email sent", "to", m.To, "subject", m.Subject, "messageId", out.MessageID)
	return nil
}

// LogMailer only logs. It stands in when no Brevo key is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, m Mail) error {
	slog.Info("mailer: email not sent (no provider configured)", "to", m.To, "subject", m.Subject)
	return nil
}

var (
	_ Mailer = (*BrevoMailer)(nil)
	_ Mailer = LogMailer{}
)

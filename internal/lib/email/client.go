// Package email sends transactional mail through Resend.
//
// Templates are HTML files embedded into the binary. When no API key
// is configured the client logs and drops mail instead of failing, so
// local environments never need Resend credentials.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/streamlinehq/streamline/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Client wraps the Resend client. client is nil when sending is
// disabled.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email client from config. An empty API key
// disables sending.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
	if c.from == "" {
		c.from = "Streamline <notifications@streamlinehq.dev>"
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c
}

// SendEmail renders the named embedded template with data and sends it.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	tmplPath := fmt.Sprintf("templates/%s.html", templateName)

	tmpl, err := template.ParseFS(templateFS, tmplPath)
	if err != nil {
		return errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	if c.client == nil {
		c.logger.Info().
			Str("to", to).
			Str("subject", subject).
			Str("template", string(templateName)).
			Msg("email sending disabled, dropping message")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

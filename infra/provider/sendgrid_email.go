package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/provider"
)

// SendgridEmailProvider implements provider.Email using the SendGrid
// API. When no API key is configured the channel reports disabled and
// Send becomes a no-op, so local runs work without credentials.
type SendgridEmailProvider struct {
	client *sendgrid.Client
	cfg    *config.Sendgrid
	logger *slog.Logger
}

// NewSendgridEmailProvider creates a SendGrid-backed email provider.
func NewSendgridEmailProvider(cfg *config.Sendgrid, logger *slog.Logger) *SendgridEmailProvider {
	p := &SendgridEmailProvider{cfg: cfg, logger: logger}
	if cfg.ApiKey != "" {
		p.client = sendgrid.NewSendClient(cfg.ApiKey)
	}
	return p
}

// Enabled implements provider.Email.
func (p *SendgridEmailProvider) Enabled() bool {
	return p.client != nil
}

// Send implements provider.Email.
func (p *SendgridEmailProvider) Send(ctx context.Context, msg *provider.EmailMessage) error {
	if p.client == nil {
		p.logger.Debug("email channel disabled, dropping message", "to", msg.To, "subject", msg.Subject)
		return nil
	}

	from := mail.NewEmail(p.cfg.FromName, p.cfg.FromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, "", msg.HTMLBody)
	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	resp, err := p.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: send rejected with status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

var _ provider.Email = (*SendgridEmailProvider)(nil)

package provider

import "context"

// EmailMessage is one outbound email.
type EmailMessage struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
	// ReplyTo overrides the default reply address when set.
	ReplyTo string
}

// Email abstracts the transactional email channel.
type Email interface {
	// Send delivers one message. Implementations do not retry.
	Send(ctx context.Context, msg *EmailMessage) error

	// Enabled reports whether the channel is configured.
	Enabled() bool
}

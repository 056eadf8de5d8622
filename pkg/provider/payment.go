// Package provider defines the contracts for external collaborators:
// the payment processor, the email channel, and the text generator.
package provider

import (
	"context"

	"github.com/google/uuid"
)

// PaymentStatus is the provider-neutral status of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentIntent is a provider payment handle. ClientSecret is handed to
// the frontend to complete the hosted payment flow.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64 // minor units
	Currency     string
	Status       PaymentStatus
}

// PaymentEvent is a webhook event normalized from the provider.
type PaymentEvent struct {
	IntentID string
	Status   PaymentStatus
	Metadata map[string]string
}

// CreateIntentParams carries the fields for opening a payment intent.
// Amount is in minor units (halalas/fils: major x100).
type CreateIntentParams struct {
	UserID      uuid.UUID
	Amount      int64
	Currency    string
	Description string
	Metadata    map[string]string
}

// Payment abstracts the payment processor.
type Payment interface {
	// CreateIntent opens a payment intent and returns its handle.
	CreateIntent(ctx context.Context, params *CreateIntentParams) (*PaymentIntent, error)

	// GetIntent retrieves a payment intent's current state.
	GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error)

	// HandleWebhook verifies a webhook payload signature and normalizes
	// the event, or returns (nil, nil) for event types we ignore.
	HandleWebhook(payload []byte, signature string) (*PaymentEvent, error)
}

// Package provider implements the external collaborators: Stripe for
// payments, SendGrid for email, OpenAI for insight text.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/provider"
)

// StripePaymentProvider implements provider.Payment using the Stripe
// API. Deposits and checkout payments both ride payment intents; the
// webhook normalizes intent events back into provider-neutral ones.
type StripePaymentProvider struct {
	cfg    *config.Stripe
	logger *slog.Logger
}

// NewStripePaymentProvider creates a Stripe-backed payment provider.
func NewStripePaymentProvider(cfg *config.Stripe, logger *slog.Logger) *StripePaymentProvider {
	stripe.Key = cfg.ApiKey
	return &StripePaymentProvider{cfg: cfg, logger: logger}
}

// CreateIntent implements provider.Payment.
func (s *StripePaymentProvider) CreateIntent(
	ctx context.Context,
	params *provider.CreateIntentParams,
) (*provider.PaymentIntent, error) {
	metadata := map[string]string{"user_id": params.UserID.String()}
	for k, v := range params.Metadata {
		metadata[k] = v
	}
	piParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(params.Amount),
		Currency: stripe.String(params.Currency),
		Metadata: metadata,
	}
	if params.Description != "" {
		piParams.Description = stripe.String(params.Description)
	}
	piParams.Context = ctx
	pi, err := paymentintent.New(piParams)
	log := s.logger.With(
		"handler", "stripe.CreateIntent",
		"user_id", params.UserID,
		"amount", params.Amount,
		"currency", params.Currency,
	)
	if err != nil {
		log.Error("stripe: failed to create payment intent", "err", err)
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return mapIntent(pi), nil
}

// GetIntent implements provider.Payment.
func (s *StripePaymentProvider) GetIntent(ctx context.Context, intentID string) (*provider.PaymentIntent, error) {
	pi, err := paymentintent.Get(intentID, &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		s.logger.Error("stripe: failed to get payment intent", "payment_intent_id", intentID, "err", err)
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}
	return mapIntent(pi), nil
}

// HandleWebhook implements provider.Payment. The signature is verified
// against the webhook signing secret before the payload is trusted.
func (s *StripePaymentProvider) HandleWebhook(payload []byte, signature string) (*provider.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed", "payment_intent.canceled":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("error parsing payment intent: %w", err)
		}
		status := provider.PaymentFailed
		if event.Type == "payment_intent.succeeded" {
			status = provider.PaymentCompleted
		}
		return &provider.PaymentEvent{
			IntentID: pi.ID,
			Status:   status,
			Metadata: pi.Metadata,
		}, nil
	default:
		s.logger.Debug("ignoring webhook event", "type", event.Type)
		return nil, nil
	}
}

func mapIntent(pi *stripe.PaymentIntent) *provider.PaymentIntent {
	return &provider.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       mapIntentStatus(pi.Status),
	}
}

func mapIntentStatus(status stripe.PaymentIntentStatus) provider.PaymentStatus {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return provider.PaymentCompleted
	case stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresPaymentMethod,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresAction:
		return provider.PaymentPending
	default:
		return provider.PaymentFailed
	}
}

var _ provider.Payment = (*StripePaymentProvider)(nil)

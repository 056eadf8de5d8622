package payment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/middleware"
	authsvc "github.com/mazadksa/mazad/pkg/service/auth"
	paymentsvc "github.com/mazadksa/mazad/pkg/service/payment"
	"github.com/mazadksa/mazad/webapi/common"
)

// Routes registers the Stripe-backed deposit and checkout endpoints.
// The webhook stays unauthenticated because Stripe signs it instead.
func Routes(
	app *fiber.App,
	paymentSvc *paymentsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Post("/api/payments/create-bid-deposit", protected, CreateBidDeposit(paymentSvc, authSvc))
	app.Post("/api/payments/confirm-deposit", protected, ConfirmDeposit(paymentSvc))
	app.Post("/api/create-payment-intent", protected, CreatePaymentIntent(paymentSvc, authSvc))
	app.Post("/api/confirm-payment", protected, ConfirmPayment(paymentSvc))
	app.Post("/api/payments/webhook", Webhook(paymentSvc))
}

// CreateBidDeposit opens a SAR deposit intent for an auction and
// returns the client secret the frontend confirms with.
func CreateBidDeposit(paymentSvc *paymentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateBidDepositInput](c)
		if input == nil {
			return err
		}
		clientSecret, deposit, err := paymentSvc.CreateBidDeposit(
			c.Context(), userID, input.AuctionID, input.BidAmount, input.DepositAmount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create bid deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Bid deposit created", fiber.Map{
			"clientSecret": clientSecret,
			"depositInfo":  deposit,
		})
	}
}

// ConfirmDeposit marks a deposit paid after the client-side flow
// completed. The webhook performs the same transition when it arrives
// first.
func ConfirmDeposit(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ConfirmDepositInput](c)
		if input == nil {
			return err
		}
		depositID, err := uuid.Parse(input.DepositID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid deposit ID", err, fiber.StatusBadRequest)
		}
		deposit, err := paymentSvc.ConfirmDeposit(c.Context(), depositID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to confirm deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit confirmed", deposit)
	}
}

// CreatePaymentIntent opens a general AED checkout intent.
func CreatePaymentIntent(paymentSvc *paymentsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreatePaymentIntentInput](c)
		if input == nil {
			return err
		}
		clientSecret, payment, err := paymentSvc.CreatePaymentIntent(
			c.Context(), userID, input.Amount, input.Description)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create payment intent", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Payment intent created", fiber.Map{
			"clientSecret": clientSecret,
			"payment":      payment,
		})
	}
}

// ConfirmPayment marks a checkout completed by its intent ID.
func ConfirmPayment(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ConfirmPaymentInput](c)
		if input == nil {
			return err
		}
		payment, err := paymentSvc.ConfirmPayment(c.Context(), input.PaymentIntentID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to confirm payment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment confirmed", payment)
	}
}

// Webhook receives Stripe events. The raw body and signature header
// go to the provider for verification before any state changes.
func Webhook(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		signature := c.Get("Stripe-Signature")
		if err := paymentSvc.HandleWebhook(c.Context(), c.Body(), signature); err != nil {
			return common.ProblemDetailsJSON(c, "Webhook processing failed", err, fiber.StatusBadRequest)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Webhook processed", fiber.Map{
			"received": true,
		})
	}
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return authSvc.CurrentUserID(token)
}

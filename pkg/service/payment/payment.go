// Package payment orchestrates the Stripe-backed flows: escrow-style
// bid deposits in SAR and checkout payment intents in AED.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainauction "github.com/mazadksa/mazad/pkg/domain/auction"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/provider"
	"github.com/mazadksa/mazad/pkg/repository"
)

// Deposit currency for bid guarantees; checkout payments run in AED.
const (
	DepositCurrency  = "SAR"
	CheckoutCurrency = "AED"
)

// ErrDepositNotPayable is returned when confirming a deposit whose
// intent has not succeeded at the provider.
var ErrDepositNotPayable = errors.New("payment has not completed")

// Service orchestrates provider payments and their records.
type Service struct {
	uow      repository.UnitOfWork
	payments provider.Payment
	logger   *slog.Logger
}

// New creates a payment Service.
func New(uow repository.UnitOfWork, payments provider.Payment, logger *slog.Logger) *Service {
	return &Service{uow: uow, payments: payments, logger: logger}
}

// CreateBidDeposit opens a pending deposit guaranteeing a bid attempt
// and returns the client secret for the hosted payment flow.
func (s *Service) CreateBidDeposit(
	ctx context.Context,
	userID uuid.UUID,
	auctionID int64,
	bidAmount, depositAmount decimal.Decimal,
) (clientSecret string, dep *dto.DepositRead, err error) {
	auctionRepo, err := s.uow.AuctionRepository()
	if err != nil {
		return "", nil, err
	}
	a, err := auctionRepo.Get(ctx, auctionID)
	if err != nil {
		return "", nil, err
	}
	if a.Status != string(domainauction.StatusActive) {
		return "", nil, domainauction.ErrAuctionNotActive
	}
	if !depositAmount.IsPositive() {
		return "", nil, fmt.Errorf("deposit amount must be positive")
	}

	depositID := uuid.New()
	intent, err := s.payments.CreateIntent(ctx, &provider.CreateIntentParams{
		UserID:      userID,
		Amount:      minorUnits(depositAmount),
		Currency:    DepositCurrency,
		Description: fmt.Sprintf("Bid deposit for auction %d", auctionID),
		Metadata: map[string]string{
			"kind":       "bid_deposit",
			"deposit_id": depositID.String(),
			"auction_id": fmt.Sprintf("%d", auctionID),
			"user_id":    userID.String(),
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to create deposit intent: %w", err)
	}

	paymentRepo, err := s.uow.PaymentRepository()
	if err != nil {
		return "", nil, err
	}
	if err = paymentRepo.CreateDeposit(ctx, &dto.DepositCreate{
		ID:              depositID,
		UserID:          userID,
		AuctionID:       auctionID,
		BidAmount:       bidAmount,
		DepositAmount:   depositAmount,
		Currency:        DepositCurrency,
		Status:          dto.DepositPending,
		PaymentIntentID: intent.ID,
	}); err != nil {
		return "", nil, err
	}
	dep, err = paymentRepo.GetDeposit(ctx, depositID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("bid deposit opened",
		"deposit_id", depositID,
		"auction_id", auctionID,
		"amount", depositAmount.StringFixed(2),
	)
	return intent.ClientSecret, dep, nil
}

// ConfirmDeposit verifies the intent with the provider and marks the
// deposit paid.
func (s *Service) ConfirmDeposit(ctx context.Context, depositID uuid.UUID) (*dto.DepositRead, error) {
	paymentRepo, err := s.uow.PaymentRepository()
	if err != nil {
		return nil, err
	}
	dep, err := paymentRepo.GetDeposit(ctx, depositID)
	if err != nil {
		return nil, err
	}

	intent, err := s.payments.GetIntent(ctx, dep.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify deposit intent: %w", err)
	}
	if intent.Status != provider.PaymentCompleted {
		return nil, ErrDepositNotPayable
	}

	paid := dto.DepositPaid
	if err = paymentRepo.UpdateDeposit(ctx, depositID, &dto.DepositUpdate{Status: &paid}); err != nil {
		return nil, err
	}
	dep.Status = paid
	s.logger.Info("bid deposit confirmed", "deposit_id", depositID)
	return dep, nil
}

// CreatePaymentIntent opens a checkout payment in AED and returns the
// client secret with the stored transaction.
func (s *Service) CreatePaymentIntent(
	ctx context.Context,
	userID uuid.UUID,
	amount decimal.Decimal,
	description string,
) (clientSecret string, tx *dto.PaymentRead, err error) {
	if !amount.IsPositive() {
		return "", nil, fmt.Errorf("payment amount must be positive")
	}

	txID := uuid.New()
	intent, err := s.payments.CreateIntent(ctx, &provider.CreateIntentParams{
		UserID:      userID,
		Amount:      minorUnits(amount),
		Currency:    CheckoutCurrency,
		Description: description,
		Metadata: map[string]string{
			"kind":           "checkout",
			"transaction_id": txID.String(),
			"user_id":        userID.String(),
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	paymentRepo, err := s.uow.PaymentRepository()
	if err != nil {
		return "", nil, err
	}
	if err = paymentRepo.CreateTransaction(ctx, &dto.PaymentCreate{
		ID:              txID,
		UserID:          userID,
		Amount:          amount,
		Currency:        CheckoutCurrency,
		Status:          dto.PaymentPending,
		PaymentIntentID: intent.ID,
		Description:     description,
	}); err != nil {
		return "", nil, err
	}
	tx, err = paymentRepo.GetTransactionByIntent(ctx, intent.ID)
	if err != nil {
		return "", nil, err
	}
	return intent.ClientSecret, tx, nil
}

// ConfirmPayment verifies the intent with the provider and marks the
// transaction completed.
func (s *Service) ConfirmPayment(ctx context.Context, intentID string) (*dto.PaymentRead, error) {
	paymentRepo, err := s.uow.PaymentRepository()
	if err != nil {
		return nil, err
	}
	tx, err := paymentRepo.GetTransactionByIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	intent, err := s.payments.GetIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment intent: %w", err)
	}
	if intent.Status != provider.PaymentCompleted {
		return nil, ErrDepositNotPayable
	}

	completed := dto.PaymentCompleted
	if err = paymentRepo.UpdateTransaction(ctx, tx.ID, &dto.PaymentUpdate{Status: &completed}); err != nil {
		return nil, err
	}
	tx.Status = completed
	return tx, nil
}

// HandleWebhook applies a signature-verified provider event to the
// matching deposit or transaction record.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.payments.HandleWebhook(payload, signature)
	if err != nil {
		return err
	}
	if event == nil {
		return nil // ignored event type
	}

	paymentRepo, err := s.uow.PaymentRepository()
	if err != nil {
		return err
	}

	log := s.logger.With("context", "payment.HandleWebhook", "intent_id", event.IntentID, "status", event.Status)

	switch event.Metadata["kind"] {
	case "bid_deposit":
		dep, err := paymentRepo.GetDepositByIntent(ctx, event.IntentID)
		if err != nil {
			return err
		}
		status := dto.DepositPending
		switch event.Status {
		case provider.PaymentCompleted:
			status = dto.DepositPaid
		case provider.PaymentFailed:
			status = dto.DepositForfeited
		}
		if err = paymentRepo.UpdateDeposit(ctx, dep.ID, &dto.DepositUpdate{Status: &status}); err != nil {
			return err
		}
		log.Info("deposit updated from webhook", "deposit_id", dep.ID, "new_status", status)
	default:
		tx, err := paymentRepo.GetTransactionByIntent(ctx, event.IntentID)
		if err != nil {
			return err
		}
		status := dto.PaymentPending
		switch event.Status {
		case provider.PaymentCompleted:
			status = dto.PaymentCompleted
		case provider.PaymentFailed:
			status = dto.PaymentFailed
		}
		if err = paymentRepo.UpdateTransaction(ctx, tx.ID, &dto.PaymentUpdate{Status: &status}); err != nil {
			return err
		}
		log.Info("transaction updated from webhook", "transaction_id", tx.ID, "new_status", status)
	}
	return nil
}

// minorUnits converts a major-unit decimal amount to provider minor
// units (x100).
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

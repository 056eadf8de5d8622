package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/mazadksa/mazad/pkg/dto"
)

// Repository defines bid deposit and payment transaction data access.
type Repository interface {
	// CreateDeposit opens a deposit record.
	CreateDeposit(ctx context.Context, create *dto.DepositCreate) error

	// GetDeposit retrieves a deposit by ID.
	GetDeposit(ctx context.Context, id uuid.UUID) (*dto.DepositRead, error)

	// GetDepositByIntent retrieves a deposit by its payment intent
	// reference.
	GetDepositByIntent(ctx context.Context, paymentIntentID string) (*dto.DepositRead, error)

	// UpdateDeposit transitions a deposit's status.
	UpdateDeposit(ctx context.Context, id uuid.UUID, update *dto.DepositUpdate) error

	// ListDepositsByAuction retrieves all deposits for an auction.
	ListDepositsByAuction(ctx context.Context, auctionID int64) ([]*dto.DepositRead, error)

	// CreateTransaction records a checkout payment attempt.
	CreateTransaction(ctx context.Context, create *dto.PaymentCreate) error

	// GetTransactionByIntent retrieves a payment transaction by its
	// payment intent reference.
	GetTransactionByIntent(ctx context.Context, paymentIntentID string) (*dto.PaymentRead, error)

	// UpdateTransaction transitions a payment transaction's status.
	UpdateTransaction(ctx context.Context, id uuid.UUID, update *dto.PaymentUpdate) error
}

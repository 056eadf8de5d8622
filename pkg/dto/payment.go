package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bid deposit statuses.
const (
	DepositPending   = "pending"
	DepositPaid      = "paid"
	DepositRefunded  = "refunded"
	DepositForfeited = "forfeited"
)

// Payment transaction statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// DepositCreate opens an escrow-style guarantee for a bid attempt.
type DepositCreate struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	AuctionID       int64
	BidAmount       decimal.Decimal
	DepositAmount   decimal.Decimal
	Currency        string
	Status          string
	PaymentIntentID string
}

// DepositRead is the read-optimized projection of a bid deposit.
type DepositRead struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	AuctionID       int64           `json:"auctionId"`
	BidAmount       decimal.Decimal `json:"bidAmount"`
	DepositAmount   decimal.Decimal `json:"depositAmount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	PaymentIntentID string          `json:"paymentIntentId"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// DepositUpdate transitions a deposit's status.
type DepositUpdate struct {
	Status          *string
	PaymentIntentID *string
}

// PaymentCreate records a checkout payment attempt.
type PaymentCreate struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Amount          decimal.Decimal
	Currency        string
	Status          string
	PaymentIntentID string
	Description     string
}

// PaymentRead is the read-optimized projection of a payment
// transaction.
type PaymentRead struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	PaymentIntentID string          `json:"paymentIntentId"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PaymentUpdate transitions a payment transaction's status.
type PaymentUpdate struct {
	Status *string
}

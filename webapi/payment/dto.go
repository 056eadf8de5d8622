package payment

import "github.com/shopspring/decimal"

// CreateBidDepositInput opens a refundable SAR deposit that qualifies
// the user to bid on an auction.
type CreateBidDepositInput struct {
	AuctionID     int64           `json:"auctionId" validate:"required"`
	BidAmount     decimal.Decimal `json:"bidAmount" validate:"required"`
	DepositAmount decimal.Decimal `json:"depositAmount" validate:"required"`
}

// ConfirmDepositInput acknowledges a deposit after the client-side
// payment flow completed.
type ConfirmDepositInput struct {
	DepositID string `json:"depositId" validate:"required,uuid"`
}

// CreatePaymentIntentInput opens a general AED checkout intent.
type CreatePaymentIntentInput struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"omitempty,max=255"`
}

// ConfirmPaymentInput acknowledges a checkout by its intent ID.
type ConfirmPaymentInput struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

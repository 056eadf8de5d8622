// Package events defines the bus events emitted by the marketplace
// services. Side effects of the bid path (points, notifications,
// behavior logging) are driven entirely by these events.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type names used for bus registration.
const (
	EventTypeBidPlaced      = "BidPlaced"
	EventTypeAuctionEnded   = "AuctionEnded"
	EventTypeUserRegistered = "UserRegistered"
)

// BidPlaced fires after a bid transaction commits.
type BidPlaced struct {
	BidID      int64
	AuctionID  int64
	CategoryID int64
	BidderID   uuid.UUID
	Amount     decimal.Decimal
	Currency   string

	// PrevBidderID is the holder of the highest bid before this one, by
	// amount, when that bidder differs from the new one.
	PrevBidderID *uuid.UUID
	PrevAmount   decimal.Decimal

	OccurredAt time.Time
}

func (BidPlaced) Type() string { return EventTypeBidPlaced }

// AuctionEnded fires once per auction when it is finalized.
type AuctionEnded struct {
	AuctionID  int64
	SellerID   uuid.UUID
	WinnerID   *uuid.UUID
	FinalPrice decimal.Decimal
	Currency   string
	OccurredAt time.Time
}

func (AuctionEnded) Type() string { return EventTypeAuctionEnded }

// UserRegistered fires after a successful registration.
type UserRegistered struct {
	UserID     uuid.UUID
	Username   string
	Email      string
	OccurredAt time.Time
}

func (UserRegistered) Type() string { return EventTypeUserRegistered }

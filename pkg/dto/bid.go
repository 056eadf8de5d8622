package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BidCreate carries the fields required to insert a bid.
type BidCreate struct {
	AuctionID int64
	BidderID  uuid.UUID
	Amount    decimal.Decimal
}

// BidRead is the read-optimized projection of a bid, enriched with the
// bidder's public identity for auction bid listings.
type BidRead struct {
	ID        int64           `json:"id"`
	AuctionID int64           `json:"auctionId"`
	BidderID  uuid.UUID       `json:"bidderId"`
	Amount    decimal.Decimal `json:"amount"`
	IsWinning bool            `json:"isWinning"`
	PlacedAt  time.Time       `json:"placedAt"`

	BidderUsername string `json:"bidderUsername,omitempty"`
	BidderFullName string `json:"bidderFullName,omitempty"`
}

// CollaborativeCandidate is an auction surfaced by the collaborative
// recommendation pass, with the number of bid categories the candidate
// bidder shares with the target user.
type CollaborativeCandidate struct {
	AuctionID        int64
	SharedCategories int
}

package auction

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an auction.
type Status string

const (
	StatusActive    Status = "active"
	StatusEnded     Status = "ended"
	StatusCancelled Status = "cancelled"
)

var (
	// ErrAuctionNotFound is returned when an auction cannot be found.
	ErrAuctionNotFound = errors.New("auction not found")
	// ErrAuctionNotActive is returned when bidding on an auction that is
	// not in the active state.
	ErrAuctionNotActive = errors.New("auction is not active")
	// ErrAuctionClosed is returned when bidding after the end time.
	ErrAuctionClosed = errors.New("auction has ended")
	// ErrBidTooLow is returned when a bid does not exceed the current
	// price by at least the auction's increment.
	ErrBidTooLow = errors.New("bid amount is too low")
	// ErrStalePrice is returned when the current price moved between the
	// minimum check and the locked re-check.
	ErrStalePrice = errors.New("auction price changed, re-submit bid")
)

// Auction is a bilingual catalog listing open for bidding.
type Auction struct {
	ID            int64           `json:"id"`
	TitleAr       string          `json:"titleAr"`
	TitleEn       string          `json:"titleEn"`
	DescriptionAr string          `json:"descriptionAr"`
	DescriptionEn string          `json:"descriptionEn"`
	CategoryID    int64           `json:"categoryId"`
	SellerID      uuid.UUID       `json:"sellerId"`
	StartingPrice decimal.Decimal `json:"startingPrice"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	BidIncrement  decimal.Decimal `json:"bidIncrement"`
	Currency      string          `json:"currency"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       time.Time       `json:"endTime"`
	Images        []string        `json:"images"`
	Status        Status          `json:"status"`
	Featured      bool            `json:"featured"`
	TotalBids     int             `json:"totalBids"`
}

// MinimumBid is the lowest amount the next bid may carry.
func (a *Auction) MinimumBid() decimal.Decimal {
	return a.CurrentPrice.Add(a.BidIncrement)
}

// CanAcceptBid validates a candidate bid amount against the auction
// state at the given time. A bid must exceed the current price and meet
// the current price plus the increment.
func (a *Auction) CanAcceptBid(amount decimal.Decimal, now time.Time) error {
	if a.Status != StatusActive {
		return ErrAuctionNotActive
	}
	if now.After(a.EndTime) {
		return ErrAuctionClosed
	}
	if amount.LessThanOrEqual(a.CurrentPrice) {
		return fmt.Errorf(
			"%w: bid must exceed the current price of %s %s",
			ErrBidTooLow, a.CurrentPrice.StringFixed(2), a.Currency,
		)
	}
	if min := a.MinimumBid(); amount.LessThan(min) {
		return fmt.Errorf(
			"%w: minimum bid is %s %s (current price %s + increment %s)",
			ErrBidTooLow,
			min.StringFixed(2), a.Currency,
			a.CurrentPrice.StringFixed(2), a.BidIncrement.StringFixed(2),
		)
	}
	return nil
}

// Bid is a single offer on an auction. At most one bid per auction has
// IsWinning set.
type Bid struct {
	ID        int64           `json:"id"`
	AuctionID int64           `json:"auctionId"`
	BidderID  uuid.UUID       `json:"bidderId"`
	Amount    decimal.Decimal `json:"amount"`
	IsWinning bool            `json:"isWinning"`
	PlacedAt  time.Time       `json:"placedAt"`
}

package auction

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAuctionInput is the request body for listing a new auction.
type CreateAuctionInput struct {
	TitleAr       string          `json:"titleAr" validate:"required,max=255"`
	TitleEn       string          `json:"titleEn" validate:"required,max=255"`
	DescriptionAr string          `json:"descriptionAr"`
	DescriptionEn string          `json:"descriptionEn"`
	CategoryID    int64           `json:"categoryId" validate:"required"`
	StartingPrice decimal.Decimal `json:"startingPrice" validate:"required"`
	BidIncrement  decimal.Decimal `json:"bidIncrement" validate:"required"`
	Currency      string          `json:"currency" validate:"omitempty,len=3"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       time.Time       `json:"endTime" validate:"required"`
	Images        []string        `json:"images"`
	Featured      bool            `json:"featured"`
}

// PlaceBidInput is the request body for a bid.
type PlaceBidInput struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

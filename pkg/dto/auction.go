package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionCreate carries the fields required to list a new auction.
type AuctionCreate struct {
	TitleAr       string
	TitleEn       string
	DescriptionAr string
	DescriptionEn string
	CategoryID    int64
	SellerID      uuid.UUID
	StartingPrice decimal.Decimal
	BidIncrement  decimal.Decimal
	Currency      string
	StartTime     time.Time
	EndTime       time.Time
	Images        []string
	Featured      bool
}

// AuctionRead is the read-optimized projection of an auction.
type AuctionRead struct {
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
	Status        string          `json:"status"`
	Featured      bool            `json:"featured"`
	TotalBids     int             `json:"totalBids"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// AuctionUpdate updates mutable auction fields; nil fields are left
// untouched.
type AuctionUpdate struct {
	CurrentPrice *decimal.Decimal
	TotalBids    *int
	Status       *string
	Featured     *bool
}

// AuctionFilter narrows auction listings.
type AuctionFilter struct {
	CategoryID *int64
	Status     *string
	Featured   *bool
}

// CategoryRead is a bilingual auction category.
type CategoryRead struct {
	ID     int64  `json:"id"`
	NameAr string `json:"nameAr"`
	NameEn string `json:"nameEn"`
	Slug   string `json:"slug"`
}

// CategoryCreate seeds the category catalog.
type CategoryCreate struct {
	NameAr string
	NameEn string
	Slug   string
}

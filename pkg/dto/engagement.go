package dto

import (
	"time"

	"github.com/google/uuid"
)

// BehaviorCreate appends one event to the behavior log.
type BehaviorCreate struct {
	UserID     uuid.UUID
	Action     string
	AuctionID  *int64
	CategoryID *int64
	Query      string
}

// BehaviorRead is a single behavior log row.
type BehaviorRead struct {
	ID         int64     `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	Action     string    `json:"action"`
	AuctionID  *int64    `json:"auctionId,omitempty"`
	CategoryID *int64    `json:"categoryId,omitempty"`
	Query      string    `json:"query,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuctionActivity is an auction's weighted behavior activity over a
// window, used by the trending recommendation pass.
type AuctionActivity struct {
	AuctionID int64
	Score     int
}

// PreferencesRead is the derived engagement state of a user.
type PreferencesRead struct {
	UserID              uuid.UUID         `json:"userId"`
	PreferredCategories []int64           `json:"preferredCategories"`
	InterestScores      map[int64]float64 `json:"interestScores"`
	BiddingStyle        string            `json:"biddingStyle"`
	RiskTolerance       string            `json:"riskTolerance"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// PreferencesUpsert rewrites a user's derived preferences.
type PreferencesUpsert struct {
	UserID              uuid.UUID
	PreferredCategories []int64
	InterestScores      map[int64]float64
	BiddingStyle        string
	RiskTolerance       string
}

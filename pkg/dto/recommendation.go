package dto

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation type tags.
const (
	RecommendationTrending     = "trending"
	RecommendationSimilar      = "similar"
	RecommendationPersonalized = "personalized"
	RecommendationCategory     = "category"
)

// RecommendationCreate is one ranked suggestion in a regenerated set.
type RecommendationCreate struct {
	UserID    uuid.UUID
	AuctionID int64
	Score     float64
	Reason    string
	Type      string
	Position  int
}

// RecommendationRead is the read-optimized projection of a
// recommendation.
type RecommendationRead struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	AuctionID int64     `json:"auctionId"`
	Score     float64   `json:"score"`
	Reason    string    `json:"reason"`
	Type      string    `json:"type"`
	Viewed    bool      `json:"viewed"`
	Clicked   bool      `json:"clicked"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

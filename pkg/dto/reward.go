package dto

import (
	"time"

	"github.com/google/uuid"
)

// RewardCreate appends a signed point delta to the ledger.
type RewardCreate struct {
	UserID    uuid.UUID
	Points    int // signed; negative for spends
	Reason    string
	AuctionID *int64
}

// RewardRead is a single ledger row.
type RewardRead struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	AuctionID *int64    `json:"auctionId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AchievementRead is an unlockable badge from the catalog.
type AchievementRead struct {
	ID        int64  `json:"id"`
	NameAr    string `json:"nameAr"`
	NameEn    string `json:"nameEn"`
	Category  string `json:"category"`
	Threshold int    `json:"threshold"`
	Icon      string `json:"icon"`
	Active    bool   `json:"active"`
}

// AchievementCreate seeds the achievement catalog.
type AchievementCreate struct {
	NameAr    string
	NameEn    string
	Category  string
	Threshold int
	Icon      string
	Active    bool
}

// UserAchievementRead records a user's first unlock of an achievement.
type UserAchievementRead struct {
	AchievementID int64     `json:"achievementId"`
	UserID        uuid.UUID `json:"userId"`
	UnlockedAt    time.Time `json:"unlockedAt"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User represents a user record in the database. The reward counters
// are denormalized from the reward ledger.
type User struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Username string    `gorm:"uniqueIndex;not null;size:50"`
	Email    string    `gorm:"uniqueIndex;not null;size:255"`
	Password string    `gorm:"not null"`
	FullName string    `gorm:"size:255"`

	RewardPoints int `gorm:"not null;default:0"`
	TotalEarned  int `gorm:"not null;default:0"`
	Level        int `gorm:"not null;default:1"`

	EmailNotifications    bool `gorm:"not null;default:true"`
	SMSNotifications      bool `gorm:"not null;default:false"`
	WhatsAppNotifications bool `gorm:"not null;default:false"`
}

// Category represents a bilingual auction category.
type Category struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	NameAr string `gorm:"not null;size:255"`
	NameEn string `gorm:"not null;size:255"`
	Slug   string `gorm:"uniqueIndex;not null;size:64"`
}

// Auction represents an auction listing.
type Auction struct {
	gorm.Model
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	TitleAr       string    `gorm:"not null;size:255"`
	TitleEn       string    `gorm:"not null;size:255"`
	DescriptionAr string    `gorm:"type:text"`
	DescriptionEn string    `gorm:"type:text"`
	CategoryID    int64     `gorm:"index;not null"`
	SellerID      uuid.UUID `gorm:"type:uuid;index;not null"`

	StartingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CurrentPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BidIncrement  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'SAR'"`

	StartTime time.Time `gorm:"not null"`
	EndTime   time.Time `gorm:"index;not null"`

	// Images is a JSON-encoded array of URLs.
	Images    string `gorm:"type:text"`
	Status    string `gorm:"type:varchar(16);index;not null;default:'active'"`
	Featured  bool   `gorm:"index;not null;default:false"`
	TotalBids int    `gorm:"not null;default:0"`
}

// Bid represents a single bid on an auction.
type Bid struct {
	gorm.Model
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	AuctionID int64           `gorm:"index;not null"`
	BidderID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsWinning bool            `gorm:"not null;default:false"`
}

// RewardTransaction is one signed ledger row. The ledger is the source
// of truth for a user's balance and total earned.
type RewardTransaction struct {
	gorm.Model
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Points    int       `gorm:"not null"`
	Reason    string    `gorm:"size:255;not null"`
	AuctionID *int64
}

// Achievement is an unlockable badge in the catalog.
type Achievement struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	NameAr    string `gorm:"not null;size:255"`
	NameEn    string `gorm:"not null;size:255"`
	Category  string `gorm:"type:varchar(32);index;not null"`
	Threshold int    `gorm:"not null"`
	Icon      string `gorm:"size:64"`
	Active    bool   `gorm:"not null;default:true"`
}

// UserAchievement records a user's first unlock of an achievement.
type UserAchievement struct {
	AchievementID int64     `gorm:"primaryKey;autoIncrement:false"`
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UnlockedAt    time.Time `gorm:"not null"`
}

// Notification represents a persisted notification.
type Notification struct {
	gorm.Model
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Type      string    `gorm:"type:varchar(32);not null"`
	Title     string    `gorm:"size:255;not null"`
	Message   string    `gorm:"type:text"`
	AuctionID *int64
	Read      bool `gorm:"not null;default:false"`
	EmailSent bool `gorm:"not null;default:false"`
}

// BidDeposit is the refundable guarantee backing a bid attempt.
type BidDeposit struct {
	gorm.Model
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	AuctionID       int64           `gorm:"index;not null"`
	BidAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DepositAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'SAR'"`
	Status          string          `gorm:"type:varchar(16);index;not null;default:'pending'"`
	PaymentIntentID string          `gorm:"uniqueIndex;size:255"`
}

// PaymentTransaction records a checkout payment attempt.
type PaymentTransaction struct {
	gorm.Model
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'AED'"`
	Status          string          `gorm:"type:varchar(16);index;not null;default:'pending'"`
	PaymentIntentID string          `gorm:"uniqueIndex;size:255"`
	Description     string          `gorm:"size:255"`
}

// UserBehavior is one append-only behavior log row.
type UserBehavior struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Action     string    `gorm:"type:varchar(16);not null"`
	AuctionID  *int64    `gorm:"index"`
	CategoryID *int64
	Query      string    `gorm:"size:255"`
	CreatedAt  time.Time `gorm:"index;not null"`
}

// UserPreference holds the derived engagement state of a user. The
// category lists and score maps are JSON-encoded.
type UserPreference struct {
	UserID              uuid.UUID `gorm:"type:uuid;primary_key"`
	PreferredCategories string    `gorm:"type:text"`
	InterestScores      string    `gorm:"type:text"`
	BiddingStyle        string    `gorm:"type:varchar(16);not null;default:'conservative'"`
	RiskTolerance       string    `gorm:"type:varchar(16);not null;default:'low'"`
	UpdatedAt           time.Time
}

// Recommendation is one ranked suggestion in a user's generated set.
type Recommendation struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	AuctionID int64     `gorm:"not null"`
	Score     float64   `gorm:"not null"`
	Reason    string    `gorm:"size:255"`
	Type      string    `gorm:"type:varchar(16);not null"`
	Viewed    bool      `gorm:"not null;default:false"`
	Clicked   bool      `gorm:"not null;default:false"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time
}

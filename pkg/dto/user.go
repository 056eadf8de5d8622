// Package dto defines the create/read/update structures exchanged
// between services and repositories.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate carries the fields required to insert a user.
type UserCreate struct {
	ID       uuid.UUID
	Username string
	Email    string
	FullName string
	Password string // bcrypt hash
}

// UserRead is the read-optimized projection of a user.
type UserRead struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Password string    `json:"-"`

	RewardPoints int `json:"rewardPoints"`
	TotalEarned  int `json:"totalEarned"`
	Level        int `json:"level"`

	EmailNotifications    bool `json:"emailNotifications"`
	SMSNotifications      bool `json:"smsNotifications"`
	WhatsAppNotifications bool `json:"whatsappNotifications"`

	CreatedAt time.Time `json:"createdAt"`
}

// UserUpdate updates mutable profile fields; nil fields are left
// untouched.
type UserUpdate struct {
	FullName              *string
	EmailNotifications    *bool
	SMSNotifications      *bool
	WhatsAppNotifications *bool
}

// UserRewardUpdate rewrites the denormalized reward counters. All
// values are recomputed from the ledger before this is applied.
type UserRewardUpdate struct {
	RewardPoints int
	TotalEarned  int
	Level        int
}

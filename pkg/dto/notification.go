package dto

import (
	"time"

	"github.com/google/uuid"
)

// NotificationCreate carries the fields required to persist a
// notification.
type NotificationCreate struct {
	UserID    uuid.UUID
	Type      string
	Title     string
	Message   string
	AuctionID *int64

	// SkipEmail suppresses the email channel for this notification even
	// when the user has opted in.
	SkipEmail bool
}

// NotificationRead is the read-optimized projection of a notification.
type NotificationRead struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	AuctionID *int64    `json:"auctionId,omitempty"`
	Read      bool      `json:"read"`
	EmailSent bool      `json:"emailSent"`
	CreatedAt time.Time `json:"createdAt"`
}

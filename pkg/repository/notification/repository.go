package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/mazadksa/mazad/pkg/dto"
)

// Repository defines notification data access.
type Repository interface {
	// Create persists a notification and returns its read projection.
	Create(ctx context.Context, create *dto.NotificationCreate) (*dto.NotificationRead, error)

	// ListByUser retrieves a user's notifications newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*dto.NotificationRead, error)

	// MarkRead flags a notification as read for the given user.
	MarkRead(ctx context.Context, userID uuid.UUID, id int64) error

	// MarkAllRead flags all of a user's notifications as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// MarkEmailSent flags a notification's email as delivered.
	MarkEmailSent(ctx context.Context, id int64) error
}

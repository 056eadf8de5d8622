package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazadksa/mazad/infra/repository/model"
	domainnotif "github.com/mazadksa/mazad/pkg/domain/notification"
	"github.com/mazadksa/mazad/pkg/dto"
	repo "github.com/mazadksa/mazad/pkg/repository/notification"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style notification repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements notification.Repository.
func (r *repository) Create(ctx context.Context, create *dto.NotificationCreate) (*dto.NotificationRead, error) {
	n := model.Notification{
		UserID:    create.UserID,
		Type:      create.Type,
		Title:     create.Title,
		Message:   create.Message,
		AuctionID: create.AuctionID,
	}
	if err := r.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(&n), nil
}

// ListByUser implements notification.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*dto.NotificationRead, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var notifications []model.Notification
	if err := q.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.NotificationRead, 0, len(notifications))
	for i := range notifications {
		result = append(result, mapModelToDTO(&notifications[i]))
	}
	return result, nil
}

// MarkRead implements notification.Repository.
func (r *repository) MarkRead(ctx context.Context, userID uuid.UUID, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainnotif.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead implements notification.Repository.
func (r *repository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

// MarkEmailSent implements notification.Repository.
func (r *repository) MarkEmailSent(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Update("email_sent", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainnotif.ErrNotificationNotFound
	}
	return err
}

func mapModelToDTO(n *model.Notification) *dto.NotificationRead {
	return &dto.NotificationRead{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		AuctionID: n.AuctionID,
		Read:      n.Read,
		EmailSent: n.EmailSent,
		CreatedAt: n.CreatedAt,
	}
}

package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazadksa/mazad/infra/repository/model"
	domainuser "github.com/mazadksa/mazad/pkg/domain/user"
	"github.com/mazadksa/mazad/pkg/dto"
	repo "github.com/mazadksa/mazad/pkg/repository/user"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style user repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements user.Repository.
func (r *repository) Create(ctx context.Context, create *dto.UserCreate) error {
	u := model.User{
		ID:       create.ID,
		Username: create.Username,
		Email:    create.Email,
		FullName: create.FullName,
		Password: create.Password,
		Level:    1,

		EmailNotifications: true,
	}
	return r.db.WithContext(ctx).Create(&u).Error
}

// Get implements user.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail implements user.Repository.
func (r *repository) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByUsername implements user.Repository.
func (r *repository) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *repository) first(ctx context.Context, query string, arg any) (*dto.UserRead, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainuser.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

// Update implements user.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	updates := make(map[string]any)
	if update.FullName != nil {
		updates["full_name"] = *update.FullName
	}
	if update.EmailNotifications != nil {
		updates["email_notifications"] = *update.EmailNotifications
	}
	if update.SMSNotifications != nil {
		updates["sms_notifications"] = *update.SMSNotifications
	}
	if update.WhatsAppNotifications != nil {
		updates["whats_app_notifications"] = *update.WhatsAppNotifications
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateRewards implements user.Repository.
func (r *repository) UpdateRewards(ctx context.Context, id uuid.UUID, update *dto.UserRewardUpdate) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(map[string]any{
		"reward_points": update.RewardPoints,
		"total_earned":  update.TotalEarned,
		"level":         update.Level,
	}).Error
}

func mapModelToDTO(u *model.User) *dto.UserRead {
	return &dto.UserRead{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Password: u.Password,

		RewardPoints: u.RewardPoints,
		TotalEarned:  u.TotalEarned,
		Level:        u.Level,

		EmailNotifications:    u.EmailNotifications,
		SMSNotifications:      u.SMSNotifications,
		WhatsAppNotifications: u.WhatsAppNotifications,

		CreatedAt: u.CreatedAt,
	}
}

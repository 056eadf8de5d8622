package reward

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mazadksa/mazad/infra/repository/model"
	"github.com/mazadksa/mazad/pkg/dto"
	repo "github.com/mazadksa/mazad/pkg/repository/reward"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style reward repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// CreateTransaction implements reward.Repository.
func (r *repository) CreateTransaction(ctx context.Context, create *dto.RewardCreate) error {
	t := model.RewardTransaction{
		UserID:    create.UserID,
		Points:    create.Points,
		Reason:    create.Reason,
		AuctionID: create.AuctionID,
	}
	return r.db.WithContext(ctx).Create(&t).Error
}

// ListByUser implements reward.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*dto.RewardRead, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var txs []model.RewardTransaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.RewardRead, 0, len(txs))
	for i := range txs {
		t := &txs[i]
		result = append(result, &dto.RewardRead{
			ID:        t.ID,
			UserID:    t.UserID,
			Points:    t.Points,
			Reason:    t.Reason,
			AuctionID: t.AuctionID,
			CreatedAt: t.CreatedAt,
		})
	}
	return result, nil
}

// SumBalance implements reward.Repository.
func (r *repository) SumBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.sum(ctx, userID, "")
}

// SumEarned implements reward.Repository.
func (r *repository) SumEarned(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.sum(ctx, userID, "points > 0")
}

func (r *repository) sum(ctx context.Context, userID uuid.UUID, extra string) (int, error) {
	q := r.db.WithContext(ctx).
		Model(&model.RewardTransaction{}).
		Where("user_id = ?", userID)
	if extra != "" {
		q = q.Where(extra)
	}
	var total *int
	if err := q.Select("SUM(points)").Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// ListAchievements implements reward.Repository.
func (r *repository) ListAchievements(ctx context.Context, activeOnly bool) ([]*dto.AchievementRead, error) {
	q := r.db.WithContext(ctx).Order("threshold")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var achievements []model.Achievement
	if err := q.Find(&achievements).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.AchievementRead, 0, len(achievements))
	for i := range achievements {
		a := &achievements[i]
		result = append(result, &dto.AchievementRead{
			ID:        a.ID,
			NameAr:    a.NameAr,
			NameEn:    a.NameEn,
			Category:  a.Category,
			Threshold: a.Threshold,
			Icon:      a.Icon,
			Active:    a.Active,
		})
	}
	return result, nil
}

// ListUserAchievements implements reward.Repository.
func (r *repository) ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*dto.UserAchievementRead, error) {
	var unlocks []model.UserAchievement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at").
		Find(&unlocks).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.UserAchievementRead, 0, len(unlocks))
	for i := range unlocks {
		u := &unlocks[i]
		result = append(result, &dto.UserAchievementRead{
			AchievementID: u.AchievementID,
			UserID:        u.UserID,
			UnlockedAt:    u.UnlockedAt,
		})
	}
	return result, nil
}

// Unlock implements reward.Repository. Replayed unlocks are ignored so
// achievement evaluation stays idempotent.
func (r *repository) Unlock(ctx context.Context, userID uuid.UUID, achievementID int64) error {
	u := model.UserAchievement{
		AchievementID: achievementID,
		UserID:        userID,
		UnlockedAt:    time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&u).Error
}

// CreateAchievement implements reward.Repository.
func (r *repository) CreateAchievement(ctx context.Context, create *dto.AchievementCreate) error {
	a := model.Achievement{
		NameAr:    create.NameAr,
		NameEn:    create.NameEn,
		Category:  create.Category,
		Threshold: create.Threshold,
		Icon:      create.Icon,
		Active:    create.Active,
	}
	return r.db.WithContext(ctx).Create(&a).Error
}

// CountAchievements implements reward.Repository.
func (r *repository) CountAchievements(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Achievement{}).Count(&count).Error
	return count, err
}

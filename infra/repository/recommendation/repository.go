package recommendation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazadksa/mazad/infra/repository/model"
	"github.com/mazadksa/mazad/pkg/dto"
	repo "github.com/mazadksa/mazad/pkg/repository/recommendation"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style recommendation repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// ReplaceForUser implements recommendation.Repository. The delete and
// reinsert ride the caller's transaction when run inside a Do block.
func (r *repository) ReplaceForUser(ctx context.Context, userID uuid.UUID, recs []*dto.RecommendationCreate) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Recommendation{}).Error
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}
	rows := make([]model.Recommendation, 0, len(recs))
	now := time.Now()
	for _, rec := range recs {
		rows = append(rows, model.Recommendation{
			UserID:    rec.UserID,
			AuctionID: rec.AuctionID,
			Score:     rec.Score,
			Reason:    rec.Reason,
			Type:      rec.Type,
			Position:  rec.Position,
			CreatedAt: now,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListByUser implements recommendation.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.RecommendationRead, error) {
	var recs []model.Recommendation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.RecommendationRead, 0, len(recs))
	for i := range recs {
		rec := &recs[i]
		result = append(result, &dto.RecommendationRead{
			ID:        rec.ID,
			UserID:    rec.UserID,
			AuctionID: rec.AuctionID,
			Score:     rec.Score,
			Reason:    rec.Reason,
			Type:      rec.Type,
			Viewed:    rec.Viewed,
			Clicked:   rec.Clicked,
			Position:  rec.Position,
			CreatedAt: rec.CreatedAt,
		})
	}
	return result, nil
}

// MarkViewed implements recommendation.Repository.
func (r *repository) MarkViewed(ctx context.Context, userID uuid.UUID, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Recommendation{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("viewed", true).Error
}

// MarkClicked implements recommendation.Repository.
func (r *repository) MarkClicked(ctx context.Context, userID uuid.UUID, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Recommendation{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("clicked", true).Error
}

package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mazadksa/mazad/infra/repository/model"
	domainengagement "github.com/mazadksa/mazad/pkg/domain/engagement"
	"github.com/mazadksa/mazad/pkg/dto"
	repo "github.com/mazadksa/mazad/pkg/repository/engagement"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style engagement repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// CreateBehavior implements engagement.Repository.
func (r *repository) CreateBehavior(ctx context.Context, create *dto.BehaviorCreate) error {
	b := model.UserBehavior{
		UserID:     create.UserID,
		Action:     create.Action,
		AuctionID:  create.AuctionID,
		CategoryID: create.CategoryID,
		Query:      create.Query,
		CreatedAt:  time.Now(),
	}
	return r.db.WithContext(ctx).Create(&b).Error
}

// ListBehavior implements engagement.Repository.
func (r *repository) ListBehavior(ctx context.Context, userID uuid.UUID, limit int) ([]*dto.BehaviorRead, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var behaviors []model.UserBehavior
	if err := q.Find(&behaviors).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.BehaviorRead, 0, len(behaviors))
	for i := range behaviors {
		b := &behaviors[i]
		result = append(result, &dto.BehaviorRead{
			ID:         b.ID,
			UserID:     b.UserID,
			Action:     b.Action,
			AuctionID:  b.AuctionID,
			CategoryID: b.CategoryID,
			Query:      b.Query,
			CreatedAt:  b.CreatedAt,
		})
	}
	return result, nil
}

// CountBidsSince implements engagement.Repository.
func (r *repository) CountBidsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserBehavior{}).
		Where("user_id = ? AND action = ? AND created_at >= ?", userID, domainengagement.ActionBid, since).
		Count(&count).Error
	return count, err
}

// TrendingSince implements engagement.Repository. Bids weigh 3, views
// 1, everything else 2.
func (r *repository) TrendingSince(ctx context.Context, since time.Time, limit int) ([]*dto.AuctionActivity, error) {
	var activity []*dto.AuctionActivity
	err := r.db.WithContext(ctx).Raw(`
		SELECT b.auction_id AS auction_id,
		       SUM(CASE b.action WHEN 'bid' THEN 3 WHEN 'view' THEN 1 ELSE 2 END) AS score
		FROM user_behaviors b
		JOIN auctions a ON a.id = b.auction_id
		WHERE b.auction_id IS NOT NULL
		  AND b.created_at >= ?
		  AND a.status = 'active'
		GROUP BY b.auction_id
		ORDER BY score DESC
		LIMIT ?`,
		since, limit,
	).Scan(&activity).Error
	if err != nil {
		return nil, err
	}
	return activity, nil
}

// GetPreferences implements engagement.Repository.
func (r *repository) GetPreferences(ctx context.Context, userID uuid.UUID) (*dto.PreferencesRead, error) {
	var p model.UserPreference
	if err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	read := &dto.PreferencesRead{
		UserID:         p.UserID,
		BiddingStyle:   p.BiddingStyle,
		RiskTolerance:  p.RiskTolerance,
		InterestScores: map[int64]float64{},
		UpdatedAt:      p.UpdatedAt,
	}
	if p.PreferredCategories != "" {
		if err := json.Unmarshal([]byte(p.PreferredCategories), &read.PreferredCategories); err != nil {
			return nil, err
		}
	}
	if p.InterestScores != "" {
		if err := json.Unmarshal([]byte(p.InterestScores), &read.InterestScores); err != nil {
			return nil, err
		}
	}
	return read, nil
}

// UpsertPreferences implements engagement.Repository.
func (r *repository) UpsertPreferences(ctx context.Context, upsert *dto.PreferencesUpsert) error {
	categories, err := json.Marshal(upsert.PreferredCategories)
	if err != nil {
		return err
	}
	scores, err := json.Marshal(upsert.InterestScores)
	if err != nil {
		return err
	}
	p := model.UserPreference{
		UserID:              upsert.UserID,
		PreferredCategories: string(categories),
		InterestScores:      string(scores),
		BiddingStyle:        upsert.BiddingStyle,
		RiskTolerance:       upsert.RiskTolerance,
		UpdatedAt:           time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&p).Error
}

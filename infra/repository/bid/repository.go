package bid

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazadksa/mazad/infra/repository/model"
	"github.com/mazadksa/mazad/pkg/dto"
	repo "github.com/mazadksa/mazad/pkg/repository/bid"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style bid repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements bid.Repository.
func (r *repository) Create(ctx context.Context, create *dto.BidCreate) (*dto.BidRead, error) {
	b := model.Bid{
		AuctionID: create.AuctionID,
		BidderID:  create.BidderID,
		Amount:    create.Amount,
	}
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(&b), nil
}

// ListByAuction implements bid.Repository. Bids are joined with their
// bidder's public identity.
func (r *repository) ListByAuction(ctx context.Context, auctionID int64) ([]*dto.BidRead, error) {
	type row struct {
		model.Bid
		BidderUsername string
		BidderFullName string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Bid{}).
		Select("bids.*, users.username AS bidder_username, users.full_name AS bidder_full_name").
		Joins("JOIN users ON users.id = bids.bidder_id").
		Where("bids.auction_id = ?", auctionID).
		Order("bids.amount DESC, bids.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.BidRead, 0, len(rows))
	for i := range rows {
		read := mapModelToDTO(&rows[i].Bid)
		read.BidderUsername = rows[i].BidderUsername
		read.BidderFullName = rows[i].BidderFullName
		result = append(result, read)
	}
	return result, nil
}

// HighestByAmount implements bid.Repository.
func (r *repository) HighestByAmount(ctx context.Context, auctionID int64) (*dto.BidRead, error) {
	var b model.Bid
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("amount DESC, created_at ASC").
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&b), nil
}

// SetWinning implements bid.Repository.
func (r *repository) SetWinning(ctx context.Context, auctionID, bidID int64) error {
	err := r.db.WithContext(ctx).
		Model(&model.Bid{}).
		Where("auction_id = ? AND is_winning = ?", auctionID, true).
		Update("is_winning", false).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.Bid{}).
		Where("id = ?", bidID).
		Update("is_winning", true).Error
}

// CountByBidder implements bid.Repository.
func (r *repository) CountByBidder(ctx context.Context, bidderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Bid{}).
		Where("bidder_id = ?", bidderID).
		Count(&count).Error
	return count, err
}

// CategoriesByBidder implements bid.Repository.
func (r *repository) CategoriesByBidder(ctx context.Context, bidderID uuid.UUID) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Bid{}).
		Distinct("auctions.category_id").
		Joins("JOIN auctions ON auctions.id = bids.auction_id").
		Where("bids.bidder_id = ?", bidderID).
		Pluck("auctions.category_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CollaborativeCandidates implements bid.Repository. Peers are bidders
// sharing at least minShared bid categories with the user; the result
// is the active auctions those peers bid on, excluding auctions the
// user already bid on.
func (r *repository) CollaborativeCandidates(ctx context.Context, userID uuid.UUID, minShared, limit int) ([]*dto.CollaborativeCandidate, error) {
	var candidates []*dto.CollaborativeCandidate
	err := r.db.WithContext(ctx).Raw(`
		WITH user_categories AS (
			SELECT DISTINCT a.category_id
			FROM bids b
			JOIN auctions a ON a.id = b.auction_id
			WHERE b.bidder_id = ?
		),
		peers AS (
			SELECT b.bidder_id, COUNT(DISTINCT a.category_id) AS shared
			FROM bids b
			JOIN auctions a ON a.id = b.auction_id
			WHERE a.category_id IN (SELECT category_id FROM user_categories)
			  AND b.bidder_id <> ?
			GROUP BY b.bidder_id
			HAVING COUNT(DISTINCT a.category_id) >= ?
		)
		SELECT b.auction_id AS auction_id, MAX(p.shared) AS shared_categories
		FROM bids b
		JOIN peers p ON p.bidder_id = b.bidder_id
		JOIN auctions a ON a.id = b.auction_id
		WHERE a.status = 'active'
		  AND b.auction_id NOT IN (
			SELECT auction_id FROM bids WHERE bidder_id = ?
		  )
		GROUP BY b.auction_id
		ORDER BY shared_categories DESC
		LIMIT ?`,
		userID, userID, minShared, userID, limit,
	).Scan(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func mapModelToDTO(b *model.Bid) *dto.BidRead {
	return &dto.BidRead{
		ID:        b.ID,
		AuctionID: b.AuctionID,
		BidderID:  b.BidderID,
		Amount:    b.Amount,
		IsWinning: b.IsWinning,
		PlacedAt:  b.CreatedAt,
	}
}

package auction

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mazadksa/mazad/infra/repository/model"
	domainauction "github.com/mazadksa/mazad/pkg/domain/auction"
	"github.com/mazadksa/mazad/pkg/dto"
	repo "github.com/mazadksa/mazad/pkg/repository/auction"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style auction repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements auction.Repository.
func (r *repository) Create(ctx context.Context, create *dto.AuctionCreate) (*dto.AuctionRead, error) {
	a := model.Auction{
		TitleAr:       create.TitleAr,
		TitleEn:       create.TitleEn,
		DescriptionAr: create.DescriptionAr,
		DescriptionEn: create.DescriptionEn,
		CategoryID:    create.CategoryID,
		SellerID:      create.SellerID,
		StartingPrice: create.StartingPrice,
		CurrentPrice:  create.StartingPrice,
		BidIncrement:  create.BidIncrement,
		Currency:      create.Currency,
		StartTime:     create.StartTime,
		EndTime:       create.EndTime,
		Images:        encodeImages(create.Images),
		Status:        string(domainauction.StatusActive),
		Featured:      create.Featured,
	}
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(&a), nil
}

// Get implements auction.Repository.
func (r *repository) Get(ctx context.Context, id int64) (*dto.AuctionRead, error) {
	var a model.Auction
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainauction.ErrAuctionNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&a), nil
}

// GetForUpdate implements auction.Repository. The row lock is held
// until the surrounding transaction commits or rolls back, serializing
// concurrent bids on the same auction.
func (r *repository) GetForUpdate(ctx context.Context, id int64) (*dto.AuctionRead, error) {
	var a model.Auction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainauction.ErrAuctionNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&a), nil
}

// List implements auction.Repository.
func (r *repository) List(ctx context.Context, filter *dto.AuctionFilter) ([]*dto.AuctionRead, error) {
	q := r.db.WithContext(ctx).Model(&model.Auction{})
	if filter != nil {
		if filter.CategoryID != nil {
			q = q.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.Status != nil {
			q = q.Where("status = ?", *filter.Status)
		}
		if filter.Featured != nil {
			q = q.Where("featured = ?", *filter.Featured)
		}
	}
	var auctions []model.Auction
	if err := q.Order("created_at DESC").Find(&auctions).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(auctions), nil
}

// Update implements auction.Repository.
func (r *repository) Update(ctx context.Context, id int64, update *dto.AuctionUpdate) error {
	updates := make(map[string]any)
	if update.CurrentPrice != nil {
		updates["current_price"] = *update.CurrentPrice
	}
	if update.TotalBids != nil {
		updates["total_bids"] = *update.TotalBids
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.Featured != nil {
		updates["featured"] = *update.Featured
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Auction{}).Where("id = ?", id).Updates(updates).Error
}

// ListExpiredActive implements auction.Repository.
func (r *repository) ListExpiredActive(ctx context.Context, now time.Time) ([]*dto.AuctionRead, error) {
	var auctions []model.Auction
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_time <= ?", string(domainauction.StatusActive), now).
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}
	return mapModelsToDTOs(auctions), nil
}

// ListActiveByCategories implements auction.Repository.
func (r *repository) ListActiveByCategories(ctx context.Context, categoryIDs []int64, limit int) ([]*dto.AuctionRead, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	var auctions []model.Auction
	err := r.db.WithContext(ctx).
		Where("status = ? AND category_id IN ?", string(domainauction.StatusActive), categoryIDs).
		Order("total_bids DESC").
		Limit(limit).
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}
	return mapModelsToDTOs(auctions), nil
}

// ListFeaturedExcluding implements auction.Repository.
func (r *repository) ListFeaturedExcluding(ctx context.Context, categoryIDs []int64, limit int) ([]*dto.AuctionRead, error) {
	q := r.db.WithContext(ctx).
		Where("status = ? AND featured = ?", string(domainauction.StatusActive), true)
	if len(categoryIDs) > 0 {
		q = q.Where("category_id NOT IN ?", categoryIDs)
	}
	var auctions []model.Auction
	if err := q.Order("total_bids DESC").Limit(limit).Find(&auctions).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(auctions), nil
}

// ListByIDs implements auction.Repository.
func (r *repository) ListByIDs(ctx context.Context, ids []int64) ([]*dto.AuctionRead, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var auctions []model.Auction
	err := r.db.WithContext(ctx).
		Where("status = ? AND id IN ?", string(domainauction.StatusActive), ids).
		Find(&auctions).Error
	if err != nil {
		return nil, err
	}
	return mapModelsToDTOs(auctions), nil
}

// Categories implements auction.Repository.
func (r *repository) Categories(ctx context.Context) ([]*dto.CategoryRead, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.CategoryRead, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		result = append(result, &dto.CategoryRead{
			ID:     c.ID,
			NameAr: c.NameAr,
			NameEn: c.NameEn,
			Slug:   c.Slug,
		})
	}
	return result, nil
}

// CreateCategory implements auction.Repository.
func (r *repository) CreateCategory(ctx context.Context, create *dto.CategoryCreate) error {
	c := model.Category{
		NameAr: create.NameAr,
		NameEn: create.NameEn,
		Slug:   create.Slug,
	}
	return r.db.WithContext(ctx).Create(&c).Error
}

// CountCategories implements auction.Repository.
func (r *repository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Count(&count).Error
	return count, err
}

func encodeImages(images []string) string {
	if len(images) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeImages(raw string) []string {
	if raw == "" {
		return nil
	}
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return nil
	}
	return images
}

func mapModelToDTO(a *model.Auction) *dto.AuctionRead {
	return &dto.AuctionRead{
		ID:            a.ID,
		TitleAr:       a.TitleAr,
		TitleEn:       a.TitleEn,
		DescriptionAr: a.DescriptionAr,
		DescriptionEn: a.DescriptionEn,
		CategoryID:    a.CategoryID,
		SellerID:      a.SellerID,
		StartingPrice: a.StartingPrice,
		CurrentPrice:  a.CurrentPrice,
		BidIncrement:  a.BidIncrement,
		Currency:      a.Currency,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Images:        decodeImages(a.Images),
		Status:        a.Status,
		Featured:      a.Featured,
		TotalBids:     a.TotalBids,
		CreatedAt:     a.CreatedAt,
	}
}

func mapModelsToDTOs(auctions []model.Auction) []*dto.AuctionRead {
	result := make([]*dto.AuctionRead, 0, len(auctions))
	for i := range auctions {
		result = append(result, mapModelToDTO(&auctions[i]))
	}
	return result
}

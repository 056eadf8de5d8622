package payment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazadksa/mazad/infra/repository/model"
	"github.com/mazadksa/mazad/pkg/dto"
	repo "github.com/mazadksa/mazad/pkg/repository/payment"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style payment repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// CreateDeposit implements payment.Repository.
func (r *repository) CreateDeposit(ctx context.Context, create *dto.DepositCreate) error {
	d := model.BidDeposit{
		ID:              create.ID,
		UserID:          create.UserID,
		AuctionID:       create.AuctionID,
		BidAmount:       create.BidAmount,
		DepositAmount:   create.DepositAmount,
		Currency:        create.Currency,
		Status:          create.Status,
		PaymentIntentID: create.PaymentIntentID,
	}
	return r.db.WithContext(ctx).Create(&d).Error
}

// GetDeposit implements payment.Repository.
func (r *repository) GetDeposit(ctx context.Context, id uuid.UUID) (*dto.DepositRead, error) {
	var d model.BidDeposit
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return mapDepositToDTO(&d), nil
}

// GetDepositByIntent implements payment.Repository.
func (r *repository) GetDepositByIntent(ctx context.Context, paymentIntentID string) (*dto.DepositRead, error) {
	var d model.BidDeposit
	if err := r.db.WithContext(ctx).First(&d, "payment_intent_id = ?", paymentIntentID).Error; err != nil {
		return nil, err
	}
	return mapDepositToDTO(&d), nil
}

// UpdateDeposit implements payment.Repository.
func (r *repository) UpdateDeposit(ctx context.Context, id uuid.UUID, update *dto.DepositUpdate) error {
	updates := make(map[string]any)
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.PaymentIntentID != nil {
		updates["payment_intent_id"] = *update.PaymentIntentID
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.BidDeposit{}).Where("id = ?", id).Updates(updates).Error
}

// ListDepositsByAuction implements payment.Repository.
func (r *repository) ListDepositsByAuction(ctx context.Context, auctionID int64) ([]*dto.DepositRead, error) {
	var deposits []model.BidDeposit
	err := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Find(&deposits).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.DepositRead, 0, len(deposits))
	for i := range deposits {
		result = append(result, mapDepositToDTO(&deposits[i]))
	}
	return result, nil
}

// CreateTransaction implements payment.Repository.
func (r *repository) CreateTransaction(ctx context.Context, create *dto.PaymentCreate) error {
	t := model.PaymentTransaction{
		ID:              create.ID,
		UserID:          create.UserID,
		Amount:          create.Amount,
		Currency:        create.Currency,
		Status:          create.Status,
		PaymentIntentID: create.PaymentIntentID,
		Description:     create.Description,
	}
	return r.db.WithContext(ctx).Create(&t).Error
}

// GetTransactionByIntent implements payment.Repository.
func (r *repository) GetTransactionByIntent(ctx context.Context, paymentIntentID string) (*dto.PaymentRead, error) {
	var t model.PaymentTransaction
	if err := r.db.WithContext(ctx).First(&t, "payment_intent_id = ?", paymentIntentID).Error; err != nil {
		return nil, err
	}
	return mapTransactionToDTO(&t), nil
}

// UpdateTransaction implements payment.Repository.
func (r *repository) UpdateTransaction(ctx context.Context, id uuid.UUID, update *dto.PaymentUpdate) error {
	updates := make(map[string]any)
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.PaymentTransaction{}).Where("id = ?", id).Updates(updates).Error
}

func mapDepositToDTO(d *model.BidDeposit) *dto.DepositRead {
	return &dto.DepositRead{
		ID:              d.ID,
		UserID:          d.UserID,
		AuctionID:       d.AuctionID,
		BidAmount:       d.BidAmount,
		DepositAmount:   d.DepositAmount,
		Currency:        d.Currency,
		Status:          d.Status,
		PaymentIntentID: d.PaymentIntentID,
		CreatedAt:       d.CreatedAt,
	}
}

func mapTransactionToDTO(t *model.PaymentTransaction) *dto.PaymentRead {
	return &dto.PaymentRead{
		ID:              t.ID,
		UserID:          t.UserID,
		Amount:          t.Amount,
		Currency:        t.Currency,
		Status:          t.Status,
		PaymentIntentID: t.PaymentIntentID,
		Description:     t.Description,
		CreatedAt:       t.CreatedAt,
	}
}

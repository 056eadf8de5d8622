package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	infraauction "github.com/mazadksa/mazad/infra/repository/auction"
	infrabid "github.com/mazadksa/mazad/infra/repository/bid"
	infraengagement "github.com/mazadksa/mazad/infra/repository/engagement"
	infranotification "github.com/mazadksa/mazad/infra/repository/notification"
	infrapayment "github.com/mazadksa/mazad/infra/repository/payment"
	infrarecommendation "github.com/mazadksa/mazad/infra/repository/recommendation"
	infrareward "github.com/mazadksa/mazad/infra/repository/reward"
	infrauser "github.com/mazadksa/mazad/infra/repository/user"
	"github.com/mazadksa/mazad/pkg/repository"
	"github.com/mazadksa/mazad/pkg/repository/auction"
	"github.com/mazadksa/mazad/pkg/repository/bid"
	"github.com/mazadksa/mazad/pkg/repository/engagement"
	"github.com/mazadksa/mazad/pkg/repository/notification"
	"github.com/mazadksa/mazad/pkg/repository/payment"
	"github.com/mazadksa/mazad/pkg/repository/recommendation"
	"github.com/mazadksa/mazad/pkg/repository/reward"
	"github.com/mazadksa/mazad/pkg/repository/user"
)

// Repository registry names.
const (
	userRepositoryName           = "user"
	auctionRepositoryName        = "auction"
	bidRepositoryName            = "bid"
	rewardRepositoryName         = "reward"
	notificationRepositoryName   = "notification"
	paymentRepositoryName        = "payment"
	engagementRepositoryName     = "engagement"
	recommendationRepositoryName = "recommendation"
)

// UoW provides transaction boundary and repository access in one
// abstraction. All repositories obtained inside a Do block are bound
// to the same transaction session.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[string]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[string]func(*gorm.DB) any{
			userRepositoryName:           func(db *gorm.DB) any { return infrauser.New(db) },
			auctionRepositoryName:        func(db *gorm.DB) any { return infraauction.New(db) },
			bidRepositoryName:            func(db *gorm.DB) any { return infrabid.New(db) },
			rewardRepositoryName:         func(db *gorm.DB) any { return infrareward.New(db) },
			notificationRepositoryName:   func(db *gorm.DB) any { return infranotification.New(db) },
			paymentRepositoryName:        func(db *gorm.DB) any { return infrapayment.New(db) },
			engagementRepositoryName:     func(db *gorm.DB) any { return infraengagement.New(db) },
			recommendationRepositoryName: func(db *gorm.DB) any { return infrarecommendation.New(db) },
		},
	}
}

// Do runs fn in a transaction boundary, providing a UoW whose
// repositories share the transaction. Nested calls reuse the current
// transaction instead of opening a new one.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	session := u.db
	if u.tx != nil {
		session = u.tx
	}
	return session.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// getRepository returns a repository by name. Inside a Do block it is
// bound to the transaction; outside it uses the base session.
func (u *UoW) getRepository(repoName string) (any, error) {
	constructor, ok := u.repoRegistry[repoName]
	if !ok {
		return nil, fmt.Errorf("unsupported repository name: %s", repoName)
	}
	session := u.tx
	if session == nil {
		session = u.db
	}
	return constructor(session), nil
}

// UserRepository returns the user repository bound to the current transaction.
func (u *UoW) UserRepository() (user.Repository, error) {
	repoAny, err := u.getRepository(userRepositoryName)
	if err != nil {
		return nil, err
	}
	return repoAny.(user.Repository), nil
}

// AuctionRepository returns the auction repository bound to the current transaction.
func (u *UoW) AuctionRepository() (auction.Repository, error) {
	repoAny, err := u.getRepository(auctionRepositoryName)
	if err != nil {
		return nil, err
	}
	return repoAny.(auction.Repository), nil
}

// BidRepository returns the bid repository bound to the current transaction.
func (u *UoW) BidRepository() (bid.Repository, error) {
	repoAny, err := u.getRepository(bidRepositoryName)
	if err != nil {
		return nil, err
	}
	return repoAny.(bid.Repository), nil
}

// RewardRepository returns the reward repository bound to the current transaction.
func (u *UoW) RewardRepository() (reward.Repository, error) {
	repoAny, err := u.getRepository(rewardRepositoryName)
	if err != nil {
		return nil, err
	}
	return repoAny.(reward.Repository), nil
}

// NotificationRepository returns the notification repository bound to the current transaction.
func (u *UoW) NotificationRepository() (notification.Repository, error) {
	repoAny, err := u.getRepository(notificationRepositoryName)
	if err != nil {
		return nil, err
	}
	return repoAny.(notification.Repository), nil
}

// PaymentRepository returns the payment repository bound to the current transaction.
func (u *UoW) PaymentRepository() (payment.Repository, error) {
	repoAny, err := u.getRepository(paymentRepositoryName)
	if err != nil {
		return nil, err
	}
	return repoAny.(payment.Repository), nil
}

// EngagementRepository returns the engagement repository bound to the current transaction.
func (u *UoW) EngagementRepository() (engagement.Repository, error) {
	repoAny, err := u.getRepository(engagementRepositoryName)
	if err != nil {
		return nil, err
	}
	return repoAny.(engagement.Repository), nil
}

// RecommendationRepository returns the recommendation repository bound to the current transaction.
func (u *UoW) RecommendationRepository() (recommendation.Repository, error) {
	repoAny, err := u.getRepository(recommendationRepositoryName)
	if err != nil {
		return nil, err
	}
	return repoAny.(recommendation.Repository), nil
}

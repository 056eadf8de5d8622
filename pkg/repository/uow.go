// Package repository defines the unit of work and the per-entity
// repository contracts implemented by infra.
package repository

import (
	"context"

	"github.com/mazadksa/mazad/pkg/repository/auction"
	"github.com/mazadksa/mazad/pkg/repository/bid"
	"github.com/mazadksa/mazad/pkg/repository/engagement"
	"github.com/mazadksa/mazad/pkg/repository/notification"
	"github.com/mazadksa/mazad/pkg/repository/payment"
	"github.com/mazadksa/mazad/pkg/repository/recommendation"
	"github.com/mazadksa/mazad/pkg/repository/reward"
	"github.com/mazadksa/mazad/pkg/repository/user"
)

// UnitOfWork provides transaction boundaries and repository access in
// one abstraction. All repositories obtained inside a Do block share
// the transaction session, so a failure at any step rolls back every
// statement of the step sequence.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an
	// error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() (user.Repository, error)
	AuctionRepository() (auction.Repository, error)
	BidRepository() (bid.Repository, error)
	RewardRepository() (reward.Repository, error)
	NotificationRepository() (notification.Repository, error)
	PaymentRepository() (payment.Repository, error)
	EngagementRepository() (engagement.Repository, error)
	RecommendationRepository() (recommendation.Repository, error)
}

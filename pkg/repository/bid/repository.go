package bid

import (
	"context"

	"github.com/google/uuid"
	"github.com/mazadksa/mazad/pkg/dto"
)

// Repository defines bid data access.
type Repository interface {
	// Create inserts a bid and returns its read projection.
	Create(ctx context.Context, create *dto.BidCreate) (*dto.BidRead, error)

	// ListByAuction retrieves an auction's bids newest first, enriched
	// with the bidder's public identity.
	ListByAuction(ctx context.Context, auctionID int64) ([]*dto.BidRead, error)

	// HighestByAmount retrieves the highest bid on an auction by amount,
	// or nil when the auction has no bids.
	HighestByAmount(ctx context.Context, auctionID int64) (*dto.BidRead, error)

	// SetWinning clears the winning flag on all of the auction's bids
	// and sets it on the given bid.
	SetWinning(ctx context.Context, auctionID, bidID int64) error

	// CountByBidder reports a user's lifetime bid count.
	CountByBidder(ctx context.Context, bidderID uuid.UUID) (int64, error)

	// CategoriesByBidder retrieves the distinct categories a user has
	// bid in.
	CategoriesByBidder(ctx context.Context, bidderID uuid.UUID) ([]int64, error)

	// CollaborativeCandidates retrieves active auctions bid on by other
	// users who share at least minShared bid categories with the user.
	CollaborativeCandidates(ctx context.Context, userID uuid.UUID, minShared, limit int) ([]*dto.CollaborativeCandidate, error)
}

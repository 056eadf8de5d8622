package auction

import (
	"context"
	"time"

	"github.com/mazadksa/mazad/pkg/dto"
)

// Repository defines auction and category data access.
type Repository interface {
	// Create inserts a new auction and returns its read projection.
	Create(ctx context.Context, create *dto.AuctionCreate) (*dto.AuctionRead, error)

	// Get retrieves an auction by ID.
	Get(ctx context.Context, id int64) (*dto.AuctionRead, error)

	// GetForUpdate retrieves an auction by ID holding a row lock for the
	// duration of the surrounding transaction. Callers must be inside a
	// UnitOfWork.Do block.
	GetForUpdate(ctx context.Context, id int64) (*dto.AuctionRead, error)

	// List retrieves auctions matching the filter, newest first.
	List(ctx context.Context, filter *dto.AuctionFilter) ([]*dto.AuctionRead, error)

	// Update updates mutable auction fields.
	Update(ctx context.Context, id int64, update *dto.AuctionUpdate) error

	// ListExpiredActive retrieves active auctions whose end time has
	// passed.
	ListExpiredActive(ctx context.Context, now time.Time) ([]*dto.AuctionRead, error)

	// ListActiveByCategories retrieves active auctions in any of the
	// given categories.
	ListActiveByCategories(ctx context.Context, categoryIDs []int64, limit int) ([]*dto.AuctionRead, error)

	// ListFeaturedExcluding retrieves featured active auctions outside
	// the given categories.
	ListFeaturedExcluding(ctx context.Context, categoryIDs []int64, limit int) ([]*dto.AuctionRead, error)

	// ListByIDs retrieves auctions by ID, active only.
	ListByIDs(ctx context.Context, ids []int64) ([]*dto.AuctionRead, error)

	// Categories retrieves the category catalog.
	Categories(ctx context.Context) ([]*dto.CategoryRead, error)

	// CreateCategory inserts a category; used by the seed command.
	CreateCategory(ctx context.Context, create *dto.CategoryCreate) error

	// CountCategories reports the category catalog size.
	CountCategories(ctx context.Context) (int64, error)
}

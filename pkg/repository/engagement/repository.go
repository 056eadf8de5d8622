package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mazadksa/mazad/pkg/dto"
)

// Repository defines behavior log and derived preference data access.
type Repository interface {
	// CreateBehavior appends one event to the behavior log.
	CreateBehavior(ctx context.Context, create *dto.BehaviorCreate) error

	// ListBehavior retrieves a user's events newest first.
	ListBehavior(ctx context.Context, userID uuid.UUID, limit int) ([]*dto.BehaviorRead, error)

	// CountBidsSince reports a user's bid-type events since the given
	// time; drives bidding style derivation.
	CountBidsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)

	// TrendingSince aggregates weighted behavior activity per auction
	// since the given time, highest first.
	TrendingSince(ctx context.Context, since time.Time, limit int) ([]*dto.AuctionActivity, error)

	// GetPreferences retrieves a user's derived preferences, or nil when
	// none have been computed yet.
	GetPreferences(ctx context.Context, userID uuid.UUID) (*dto.PreferencesRead, error)

	// UpsertPreferences rewrites a user's derived preferences.
	UpsertPreferences(ctx context.Context, upsert *dto.PreferencesUpsert) error
}

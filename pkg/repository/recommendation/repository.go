package recommendation

import (
	"context"

	"github.com/google/uuid"
	"github.com/mazadksa/mazad/pkg/dto"
)

// Repository defines recommendation data access. Sets are regenerated
// wholesale: ReplaceForUser deletes the previous set and inserts the
// new one.
type Repository interface {
	// ReplaceForUser atomically swaps a user's recommendation set.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, recs []*dto.RecommendationCreate) error

	// ListByUser retrieves a user's recommendations by position.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.RecommendationRead, error)

	// MarkViewed flags a recommendation as seen.
	MarkViewed(ctx context.Context, userID uuid.UUID, id int64) error

	// MarkClicked flags a recommendation as clicked through.
	MarkClicked(ctx context.Context, userID uuid.UUID, id int64) error
}

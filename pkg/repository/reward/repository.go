package reward

import (
	"context"

	"github.com/google/uuid"
	"github.com/mazadksa/mazad/pkg/dto"
)

// Repository defines reward ledger and achievement data access.
type Repository interface {
	// CreateTransaction appends a ledger row.
	CreateTransaction(ctx context.Context, create *dto.RewardCreate) error

	// ListByUser retrieves a user's ledger newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*dto.RewardRead, error)

	// SumBalance is the sum of all signed deltas for a user.
	SumBalance(ctx context.Context, userID uuid.UUID) (int, error)

	// SumEarned is the sum of positive deltas for a user. The ledger is
	// the source of truth for total earned.
	SumEarned(ctx context.Context, userID uuid.UUID) (int, error)

	// ListAchievements retrieves the achievement catalog, optionally
	// active only.
	ListAchievements(ctx context.Context, activeOnly bool) ([]*dto.AchievementRead, error)

	// ListUserAchievements retrieves a user's unlocks.
	ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]*dto.UserAchievementRead, error)

	// Unlock records a user's first unlock of an achievement.
	Unlock(ctx context.Context, userID uuid.UUID, achievementID int64) error

	// CreateAchievement inserts a catalog row; used by the seed command.
	CreateAchievement(ctx context.Context, create *dto.AchievementCreate) error

	// CountAchievements reports the catalog size.
	CountAchievements(ctx context.Context) (int64, error)
}

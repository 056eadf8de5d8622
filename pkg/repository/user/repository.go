package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/mazadksa/mazad/pkg/dto"
)

// Repository defines user data access.
type Repository interface {
	// Create inserts a new user record from a DTO.
	Create(ctx context.Context, create *dto.UserCreate) error

	// Get retrieves a user by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*dto.UserRead, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*dto.UserRead, error)

	// Update updates mutable profile fields.
	Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error

	// UpdateRewards rewrites the denormalized reward counters.
	UpdateRewards(ctx context.Context, id uuid.UUID, update *dto.UserRewardUpdate) error
}

// Package user provides profile reads and notification channel
// preference updates.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/repository"
)

// Service provides user profile operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	userRepo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return userRepo.Get(ctx, id)
}

// Update applies profile and channel opt-in changes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) (*dto.UserRead, error) {
	var u *dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		userRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err = userRepo.Update(ctx, id, update); err != nil {
			return err
		}
		u, err = userRepo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user profile updated", "user_id", id)
	return u, nil
}

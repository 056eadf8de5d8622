// Package auth implements registration and login. Login verifies the
// stored bcrypt hash and never provisions accounts for unknown
// identities.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/domain/events"
	domainuser "github.com/mazadksa/mazad/pkg/domain/user"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/eventbus"
	"github.com/mazadksa/mazad/pkg/repository"
	"github.com/mazadksa/mazad/pkg/utils"
)

// Service registers and authenticates users, issuing JWT bearer tokens.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	cfg    config.Jwt
	logger *slog.Logger
}

// New creates an auth Service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, cfg config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, cfg: cfg, logger: logger}
}

// Register creates a new user with a hashed credential and returns the
// user with a signed token.
func (s *Service) Register(
	ctx context.Context,
	username, email, fullName, password string,
) (u *dto.UserRead, token string, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		userRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if existing, err := userRepo.GetByUsername(ctx, username); err == nil && existing != nil {
			return domainuser.ErrUserExists
		}
		if existing, err := userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
			return domainuser.ErrUserExists
		}

		newUser, err := domainuser.New(username, email, fullName, password)
		if err != nil {
			return err
		}
		if err = userRepo.Create(ctx, &dto.UserCreate{
			ID:       newUser.ID,
			Username: newUser.Username,
			Email:    newUser.Email,
			FullName: newUser.FullName,
			Password: newUser.Password,
		}); err != nil {
			return err
		}
		u, err = userRepo.Get(ctx, newUser.ID)
		return err
	})
	if err != nil {
		return nil, "", err
	}

	token, err = s.generateToken(u)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", "user_id", u.ID, "username", u.Username)
	if pubErr := s.bus.Publish(ctx, events.UserRegistered{
		UserID:     u.ID,
		Username:   u.Username,
		Email:      u.Email,
		OccurredAt: time.Now().UTC(),
	}); pubErr != nil {
		s.logger.Error("failed to publish UserRegistered", "error", pubErr)
	}
	return u, token, nil
}

// Login authenticates by username or email against the stored hash.
func (s *Service) Login(
	ctx context.Context,
	identity, password string,
) (u *dto.UserRead, token string, err error) {
	userRepo, err := s.uow.UserRepository()
	if err != nil {
		return nil, "", err
	}

	u, err = userRepo.GetByUsername(ctx, identity)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, domainuser.ErrUserNotFound) {
			return nil, "", err
		}
		u, err = userRepo.GetByEmail(ctx, identity)
		if err != nil {
			s.logger.Warn("login attempt for unknown identity", "identity", identity)
			return nil, "", domainuser.ErrInvalidCredentials
		}
	}

	if !utils.CheckPasswordHash(password, u.Password) {
		s.logger.Warn("login attempt with wrong password", "user_id", u.ID)
		return nil, "", domainuser.ErrInvalidCredentials
	}

	token, err = s.generateToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// CurrentUserID extracts the authenticated user's ID from a verified
// token.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domainuser.ErrInvalidCredentials
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domainuser.ErrInvalidCredentials
	}
	return uuid.Parse(raw)
}

// CurrentUser loads the authenticated user's profile.
func (s *Service) CurrentUser(ctx context.Context, token *jwt.Token) (*dto.UserRead, error) {
	userID, err := s.CurrentUserID(token)
	if err != nil {
		return nil, err
	}
	userRepo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return userRepo.Get(ctx, userID)
}

func (s *Service) generateToken(u *dto.UserRead) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID.String(),
		"username": u.Username,
		"exp":      time.Now().Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

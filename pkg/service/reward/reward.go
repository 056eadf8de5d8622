// Package reward implements the point ledger, level recomputation, and
// achievement unlocking. The ledger is the source of truth: the user's
// denormalized counters are recomputed from it inside the same
// transaction as every ledger write.
package reward

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	domainreward "github.com/mazadksa/mazad/pkg/domain/reward"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/repository"
)

// Service maintains the reward program state.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a reward Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// AddPoints appends a signed delta to the user's ledger and recomputes
// balance, total earned, and level from the ledger. Levels never
// decrease. Returns the user with updated counters.
func (s *Service) AddPoints(
	ctx context.Context,
	userID uuid.UUID,
	points int,
	reason string,
	auctionID *int64,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		rewardRepo, err := uow.RewardRepository()
		if err != nil {
			return err
		}
		userRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}

		u, err = userRepo.Get(ctx, userID)
		if err != nil {
			return err
		}

		if err = rewardRepo.CreateTransaction(ctx, &dto.RewardCreate{
			UserID:    userID,
			Points:    points,
			Reason:    reason,
			AuctionID: auctionID,
		}); err != nil {
			return err
		}

		balance, err := rewardRepo.SumBalance(ctx, userID)
		if err != nil {
			return err
		}
		earned, err := rewardRepo.SumEarned(ctx, userID)
		if err != nil {
			return err
		}

		level := domainreward.LevelForEarned(earned)
		if level < u.Level {
			level = u.Level
		}

		if err = userRepo.UpdateRewards(ctx, userID, &dto.UserRewardUpdate{
			RewardPoints: balance,
			TotalEarned:  earned,
			Level:        level,
		}); err != nil {
			return err
		}
		u.RewardPoints = balance
		u.TotalEarned = earned
		u.Level = level
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("reward points applied",
		"user_id", userID,
		"points", points,
		"reason", reason,
		"balance", u.RewardPoints,
		"level", u.Level,
	)
	return u, nil
}

// CheckAndUnlockAchievements evaluates every active achievement the
// user has not unlocked yet and records the newly satisfied ones.
// Calling it again without new qualifying activity unlocks nothing.
func (s *Service) CheckAndUnlockAchievements(
	ctx context.Context,
	userID uuid.UUID,
) (unlocked []*dto.AchievementRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		rewardRepo, err := uow.RewardRepository()
		if err != nil {
			return err
		}
		userRepo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		bidRepo, err := uow.BidRepository()
		if err != nil {
			return err
		}

		u, err := userRepo.Get(ctx, userID)
		if err != nil {
			return err
		}
		catalog, err := rewardRepo.ListAchievements(ctx, true)
		if err != nil {
			return err
		}
		held, err := rewardRepo.ListUserAchievements(ctx, userID)
		if err != nil {
			return err
		}
		heldSet := make(map[int64]bool, len(held))
		for _, h := range held {
			heldSet[h.AchievementID] = true
		}

		var (
			bidCount     int64
			haveBidCount bool
		)
		for _, a := range catalog {
			if heldSet[a.ID] {
				continue
			}
			satisfied := false
			switch a.Category {
			case domainreward.CategoryBidding:
				if !haveBidCount {
					bidCount, err = bidRepo.CountByBidder(ctx, userID)
					if err != nil {
						return err
					}
					haveBidCount = true
				}
				satisfied = bidCount >= int64(a.Threshold)
			case domainreward.CategoryPoints:
				satisfied = u.TotalEarned >= a.Threshold
			case domainreward.CategoryLevel:
				satisfied = u.Level >= a.Threshold
			}
			if !satisfied {
				continue
			}
			if err = rewardRepo.Unlock(ctx, userID, a.ID); err != nil {
				return err
			}
			unlocked = append(unlocked, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(unlocked) > 0 {
		s.logger.Info("achievements unlocked", "user_id", userID, "count", len(unlocked))
	}
	return unlocked, nil
}

// Ledger returns the user's most recent reward transactions.
func (s *Service) Ledger(ctx context.Context, userID uuid.UUID, limit int) ([]*dto.RewardRead, error) {
	rewardRepo, err := s.uow.RewardRepository()
	if err != nil {
		return nil, err
	}
	return rewardRepo.ListByUser(ctx, userID, limit)
}

// Achievements returns the active catalog together with the user's
// unlocks.
func (s *Service) Achievements(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.AchievementRead, []*dto.UserAchievementRead, error) {
	rewardRepo, err := s.uow.RewardRepository()
	if err != nil {
		return nil, nil, err
	}
	catalog, err := rewardRepo.ListAchievements(ctx, true)
	if err != nil {
		return nil, nil, err
	}
	held, err := rewardRepo.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return catalog, held, nil
}

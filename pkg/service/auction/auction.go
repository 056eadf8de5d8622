// Package auction implements listing management and the end-of-life
// pass that finalizes expired auctions.
package auction

import (
	"context"
	"log/slog"
	"time"

	"github.com/mazadksa/mazad/pkg/domain/auction"
	"github.com/mazadksa/mazad/pkg/domain/events"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/eventbus"
	"github.com/mazadksa/mazad/pkg/repository"
)

// Service manages auction listings.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates an auction Service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// Create lists a new auction. The current price starts at the starting
// price.
func (s *Service) Create(ctx context.Context, create *dto.AuctionCreate) (*dto.AuctionRead, error) {
	auctionRepo, err := s.uow.AuctionRepository()
	if err != nil {
		return nil, err
	}
	a, err := auctionRepo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	s.logger.Info("auction listed", "auction_id", a.ID, "seller_id", a.SellerID)
	return a, nil
}

// Get retrieves one auction.
func (s *Service) Get(ctx context.Context, id int64) (*dto.AuctionRead, error) {
	auctionRepo, err := s.uow.AuctionRepository()
	if err != nil {
		return nil, err
	}
	return auctionRepo.Get(ctx, id)
}

// List retrieves auctions matching the filter.
func (s *Service) List(ctx context.Context, filter *dto.AuctionFilter) ([]*dto.AuctionRead, error) {
	auctionRepo, err := s.uow.AuctionRepository()
	if err != nil {
		return nil, err
	}
	return auctionRepo.List(ctx, filter)
}

// Bids retrieves an auction's bids, newest first, enriched with bidder
// identity. The auction must exist.
func (s *Service) Bids(ctx context.Context, auctionID int64) ([]*dto.BidRead, error) {
	auctionRepo, err := s.uow.AuctionRepository()
	if err != nil {
		return nil, err
	}
	if _, err = auctionRepo.Get(ctx, auctionID); err != nil {
		return nil, err
	}
	bidRepo, err := s.uow.BidRepository()
	if err != nil {
		return nil, err
	}
	return bidRepo.ListByAuction(ctx, auctionID)
}

// Categories retrieves the category catalog.
func (s *Service) Categories(ctx context.Context) ([]*dto.CategoryRead, error) {
	auctionRepo, err := s.uow.AuctionRepository()
	if err != nil {
		return nil, err
	}
	return auctionRepo.Categories(ctx)
}

// FinalizeExpired transitions every active auction past its end time to
// ended, marks losing paid deposits refundable, and publishes one
// AuctionEnded event per auction. Returns the number finalized.
func (s *Service) FinalizeExpired(ctx context.Context) (int, error) {
	auctionRepo, err := s.uow.AuctionRepository()
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	expired, err := auctionRepo.ListExpiredActive(ctx, now)
	if err != nil {
		return 0, err
	}

	finalized := 0
	for _, a := range expired {
		evt, err := s.finalizeOne(ctx, a)
		if err != nil {
			s.logger.Error("failed to finalize auction", "auction_id", a.ID, "error", err)
			continue
		}
		finalized++
		if pubErr := s.bus.Publish(ctx, *evt); pubErr != nil {
			s.logger.Error("failed to publish AuctionEnded", "auction_id", a.ID, "error", pubErr)
		}
	}
	if finalized > 0 {
		s.logger.Info("expired auctions finalized", "count", finalized)
	}
	return finalized, nil
}

func (s *Service) finalizeOne(ctx context.Context, a *dto.AuctionRead) (*events.AuctionEnded, error) {
	evt := &events.AuctionEnded{
		AuctionID:  a.ID,
		SellerID:   a.SellerID,
		FinalPrice: a.CurrentPrice,
		Currency:   a.Currency,
		OccurredAt: time.Now().UTC(),
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		auctionRepo, err := uow.AuctionRepository()
		if err != nil {
			return err
		}
		bidRepo, err := uow.BidRepository()
		if err != nil {
			return err
		}
		paymentRepo, err := uow.PaymentRepository()
		if err != nil {
			return err
		}

		ended := string(auction.StatusEnded)
		if err = auctionRepo.Update(ctx, a.ID, &dto.AuctionUpdate{Status: &ended}); err != nil {
			return err
		}

		winner, err := bidRepo.HighestByAmount(ctx, a.ID)
		if err != nil {
			return err
		}
		if winner != nil {
			winnerID := winner.BidderID
			evt.WinnerID = &winnerID
			evt.FinalPrice = winner.Amount
		}

		// Paid deposits of everyone but the winner become refundable.
		deposits, err := paymentRepo.ListDepositsByAuction(ctx, a.ID)
		if err != nil {
			return err
		}
		for _, d := range deposits {
			if d.Status != dto.DepositPaid {
				continue
			}
			if winner != nil && d.UserID == winner.BidderID {
				continue
			}
			refunded := dto.DepositRefunded
			if err = paymentRepo.UpdateDeposit(ctx, d.ID, &dto.DepositUpdate{Status: &refunded}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return evt, nil
}

// Package bidding implements the bid placement flow. The write sequence
// runs inside one database transaction with the auction row locked, so
// two simultaneous bids serialize and the winning flag always lands on
// the highest accepted amount. Side effects (points, notifications,
// behavior logging) are published to the event bus after commit.
package bidding

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainauction "github.com/mazadksa/mazad/pkg/domain/auction"
	"github.com/mazadksa/mazad/pkg/domain/events"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/eventbus"
	"github.com/mazadksa/mazad/pkg/repository"
)

// Service places bids.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a bidding Service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// PlaceBid validates and records a bid on an auction. On success it
// returns the inserted bid and the auction with its updated price and
// bid count.
func (s *Service) PlaceBid(
	ctx context.Context,
	auctionID int64,
	bidderID uuid.UUID,
	amount decimal.Decimal,
) (b *dto.BidRead, a *dto.AuctionRead, err error) {
	log := s.logger.With(
		"context", "PlaceBid",
		"auction_id", auctionID,
		"bidder_id", bidderID,
		"amount", amount.StringFixed(2),
	)

	var evt events.BidPlaced
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		auctionRepo, err := uow.AuctionRepository()
		if err != nil {
			return err
		}
		bidRepo, err := uow.BidRepository()
		if err != nil {
			return err
		}

		// Locks the auction row until commit; concurrent bids on the
		// same auction wait here and re-validate against the fresh
		// price.
		a, err = auctionRepo.GetForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}

		listing := domainauction.Auction{
			Status:       domainauction.Status(a.Status),
			EndTime:      a.EndTime,
			CurrentPrice: a.CurrentPrice,
			BidIncrement: a.BidIncrement,
			Currency:     a.Currency,
		}
		if err = listing.CanAcceptBid(amount, time.Now().UTC()); err != nil {
			return err
		}

		prev, err := bidRepo.HighestByAmount(ctx, auctionID)
		if err != nil {
			return err
		}

		b, err = bidRepo.Create(ctx, &dto.BidCreate{
			AuctionID: auctionID,
			BidderID:  bidderID,
			Amount:    amount,
		})
		if err != nil {
			return err
		}
		if err = bidRepo.SetWinning(ctx, auctionID, b.ID); err != nil {
			return err
		}
		b.IsWinning = true

		totalBids := a.TotalBids + 1
		if err = auctionRepo.Update(ctx, auctionID, &dto.AuctionUpdate{
			CurrentPrice: &amount,
			TotalBids:    &totalBids,
		}); err != nil {
			return err
		}
		a.CurrentPrice = amount
		a.TotalBids = totalBids

		evt = events.BidPlaced{
			BidID:      b.ID,
			AuctionID:  auctionID,
			CategoryID: a.CategoryID,
			BidderID:   bidderID,
			Amount:     amount,
			Currency:   a.Currency,
			OccurredAt: b.PlacedAt,
		}
		if prev != nil && prev.BidderID != bidderID {
			prevBidder := prev.BidderID
			evt.PrevBidderID = &prevBidder
			evt.PrevAmount = prev.Amount
		}
		return nil
	})
	if err != nil {
		log.Error("bid rejected", "error", err)
		return nil, nil, err
	}

	log.Info("bid accepted", "bid_id", b.ID, "total_bids", a.TotalBids)
	if pubErr := s.bus.Publish(ctx, evt); pubErr != nil {
		// The bid is committed; losing a side effect is not a reason to
		// fail the request.
		log.Error("failed to publish BidPlaced", "error", pubErr)
	}
	return b, a, nil
}

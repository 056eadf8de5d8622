package auction_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	infraeventbus "github.com/mazadksa/mazad/infra/eventbus"
	"github.com/mazadksa/mazad/internal/fixtures/mocks"
	"github.com/mazadksa/mazad/pkg/domain/events"
	"github.com/mazadksa/mazad/pkg/dto"
	auctionsvc "github.com/mazadksa/mazad/pkg/service/auction"
)

func newService(t *testing.T) (
	*auctionsvc.Service,
	*mocks.MockAuctionRepository,
	*mocks.MockBidRepository,
	*mocks.MockPaymentRepository,
	*infraeventbus.MemoryEventBus,
) {
	auctionRepo := mocks.NewMockAuctionRepository(t)
	bidRepo := mocks.NewMockBidRepository(t)
	paymentRepo := mocks.NewMockPaymentRepository(t)
	uow := mocks.NewMockUnitOfWork(t).
		WithAuctionRepository(auctionRepo).
		WithBidRepository(bidRepo).
		WithPaymentRepository(paymentRepo)
	bus := infraeventbus.NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := auctionsvc.New(uow, bus, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, auctionRepo, bidRepo, paymentRepo, bus
}

func TestFinalizeExpired_PicksWinnerAndRefundsLosers(t *testing.T) {
	t.Parallel()
	svc, auctionRepo, bidRepo, paymentRepo, bus := newService(t)
	sellerID := uuid.New()
	winnerID := uuid.New()
	loserID := uuid.New()
	depositID := uuid.New()
	winnerDepositID := uuid.New()

	auctionRepo.On("ListExpiredActive", mock.Anything, mock.Anything).
		Return([]*dto.AuctionRead{{
			ID:           1,
			SellerID:     sellerID,
			CurrentPrice: decimal.NewFromInt(16000),
			Currency:     "SAR",
			EndTime:      time.Now().Add(-time.Minute),
		}}, nil)
	auctionRepo.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(u *dto.AuctionUpdate) bool {
		return u.Status != nil && *u.Status == "ended"
	})).Return(nil)
	bidRepo.On("HighestByAmount", mock.Anything, int64(1)).Return(&dto.BidRead{
		ID: 42, BidderID: winnerID, Amount: decimal.NewFromInt(16000),
	}, nil)
	paymentRepo.On("ListDepositsByAuction", mock.Anything, int64(1)).
		Return([]*dto.DepositRead{
			{ID: winnerDepositID, UserID: winnerID, Status: dto.DepositPaid},
			{ID: depositID, UserID: loserID, Status: dto.DepositPaid},
			{ID: uuid.New(), UserID: uuid.New(), Status: dto.DepositPending},
		}, nil)
	paymentRepo.On("UpdateDeposit", mock.Anything, depositID, mock.MatchedBy(func(u *dto.DepositUpdate) bool {
		return u.Status != nil && *u.Status == dto.DepositRefunded
	})).Return(nil)

	finalized, err := svc.FinalizeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, finalized)

	// The winner's paid deposit must stay untouched.
	paymentRepo.AssertNotCalled(t, "UpdateDeposit", mock.Anything, winnerDepositID, mock.Anything)

	published := bus.Published()
	require.Len(t, published, 1)
	evt := published[0].(events.AuctionEnded)
	require.NotNil(t, evt.WinnerID)
	assert.Equal(t, winnerID, *evt.WinnerID)
	assert.True(t, evt.FinalPrice.Equal(decimal.NewFromInt(16000)))
}

func TestFinalizeExpired_NoBids(t *testing.T) {
	t.Parallel()
	svc, auctionRepo, bidRepo, paymentRepo, bus := newService(t)

	auctionRepo.On("ListExpiredActive", mock.Anything, mock.Anything).
		Return([]*dto.AuctionRead{{
			ID:           2,
			SellerID:     uuid.New(),
			CurrentPrice: decimal.NewFromInt(500),
			Currency:     "SAR",
		}}, nil)
	auctionRepo.On("Update", mock.Anything, int64(2), mock.Anything).Return(nil)
	bidRepo.On("HighestByAmount", mock.Anything, int64(2)).Return(nil, nil)
	paymentRepo.On("ListDepositsByAuction", mock.Anything, int64(2)).
		Return([]*dto.DepositRead{}, nil)

	finalized, err := svc.FinalizeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, finalized)

	evt := bus.Published()[0].(events.AuctionEnded)
	assert.Nil(t, evt.WinnerID)
	assert.True(t, evt.FinalPrice.Equal(decimal.NewFromInt(500)))
}

func TestFinalizeExpired_NothingExpired(t *testing.T) {
	t.Parallel()
	svc, auctionRepo, _, _, bus := newService(t)

	auctionRepo.On("ListExpiredActive", mock.Anything, mock.Anything).
		Return([]*dto.AuctionRead{}, nil)

	finalized, err := svc.FinalizeExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, finalized)
	assert.Empty(t, bus.Published())
}

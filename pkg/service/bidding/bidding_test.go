package bidding_test

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
	"github.com/mazadksa/mazad/pkg/domain/auction"
	"github.com/mazadksa/mazad/pkg/domain/events"
	"github.com/mazadksa/mazad/pkg/dto"
	biddingsvc "github.com/mazadksa/mazad/pkg/service/bidding"
)

func newService(t *testing.T) (
	*biddingsvc.Service,
	*mocks.MockAuctionRepository,
	*mocks.MockBidRepository,
	*infraeventbus.MemoryEventBus,
) {
	auctionRepo := mocks.NewMockAuctionRepository(t)
	bidRepo := mocks.NewMockBidRepository(t)
	uow := mocks.NewMockUnitOfWork(t).
		WithAuctionRepository(auctionRepo).
		WithBidRepository(bidRepo)
	bus := infraeventbus.NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := biddingsvc.New(uow, bus, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, auctionRepo, bidRepo, bus
}

func openAuction(id int64) *dto.AuctionRead {
	return &dto.AuctionRead{
		ID:           id,
		CategoryID:   7,
		CurrentPrice: decimal.NewFromInt(15500),
		BidIncrement: decimal.NewFromInt(250),
		Currency:     "SAR",
		Status:       string(auction.StatusActive),
		EndTime:      time.Now().Add(time.Hour),
		TotalBids:    4,
	}
}

func TestPlaceBid_Success(t *testing.T) {
	t.Parallel()
	svc, auctionRepo, bidRepo, bus := newService(t)
	bidderID := uuid.New()
	amount := decimal.NewFromInt(15750)

	auctionRepo.On("GetForUpdate", mock.Anything, int64(1)).Return(openAuction(1), nil)
	bidRepo.On("HighestByAmount", mock.Anything, int64(1)).Return(nil, nil)
	bidRepo.On("Create", mock.Anything, mock.Anything).Return(&dto.BidRead{
		ID:        42,
		AuctionID: 1,
		BidderID:  bidderID,
		Amount:    amount,
		PlacedAt:  time.Now(),
	}, nil)
	bidRepo.On("SetWinning", mock.Anything, int64(1), int64(42)).Return(nil)
	auctionRepo.On("Update", mock.Anything, int64(1), mock.Anything).Return(nil)

	b, a, err := svc.PlaceBid(context.Background(), 1, bidderID, amount)
	require.NoError(t, err)
	assert.True(t, b.IsWinning)
	assert.True(t, a.CurrentPrice.Equal(amount))
	assert.Equal(t, 5, a.TotalBids)

	published := bus.Published()
	require.Len(t, published, 1)
	evt, ok := published[0].(events.BidPlaced)
	require.True(t, ok)
	assert.Equal(t, int64(42), evt.BidID)
	assert.Nil(t, evt.PrevBidderID)
}

func TestPlaceBid_OutbidEventCarriesPreviousBidder(t *testing.T) {
	t.Parallel()
	svc, auctionRepo, bidRepo, bus := newService(t)
	bidderID := uuid.New()
	prevBidderID := uuid.New()
	amount := decimal.NewFromInt(16000)

	auctionRepo.On("GetForUpdate", mock.Anything, int64(1)).Return(openAuction(1), nil)
	bidRepo.On("HighestByAmount", mock.Anything, int64(1)).Return(&dto.BidRead{
		ID:       41,
		BidderID: prevBidderID,
		Amount:   decimal.NewFromInt(15500),
	}, nil)
	bidRepo.On("Create", mock.Anything, mock.Anything).Return(&dto.BidRead{
		ID: 42, AuctionID: 1, BidderID: bidderID, Amount: amount,
	}, nil)
	bidRepo.On("SetWinning", mock.Anything, int64(1), int64(42)).Return(nil)
	auctionRepo.On("Update", mock.Anything, int64(1), mock.Anything).Return(nil)

	_, _, err := svc.PlaceBid(context.Background(), 1, bidderID, amount)
	require.NoError(t, err)

	published := bus.Published()
	require.Len(t, published, 1)
	evt := published[0].(events.BidPlaced)
	require.NotNil(t, evt.PrevBidderID)
	assert.Equal(t, prevBidderID, *evt.PrevBidderID)
	assert.True(t, evt.PrevAmount.Equal(decimal.NewFromInt(15500)))
}

func TestPlaceBid_NoOutbidWhenSameBidder(t *testing.T) {
	t.Parallel()
	svc, auctionRepo, bidRepo, bus := newService(t)
	bidderID := uuid.New()

	auctionRepo.On("GetForUpdate", mock.Anything, int64(1)).Return(openAuction(1), nil)
	bidRepo.On("HighestByAmount", mock.Anything, int64(1)).Return(&dto.BidRead{
		ID: 41, BidderID: bidderID, Amount: decimal.NewFromInt(15500),
	}, nil)
	bidRepo.On("Create", mock.Anything, mock.Anything).Return(&dto.BidRead{
		ID: 42, AuctionID: 1, BidderID: bidderID, Amount: decimal.NewFromInt(15750),
	}, nil)
	bidRepo.On("SetWinning", mock.Anything, int64(1), int64(42)).Return(nil)
	auctionRepo.On("Update", mock.Anything, int64(1), mock.Anything).Return(nil)

	_, _, err := svc.PlaceBid(context.Background(), 1, bidderID, decimal.NewFromInt(15750))
	require.NoError(t, err)

	evt := bus.Published()[0].(events.BidPlaced)
	assert.Nil(t, evt.PrevBidderID)
}

func TestPlaceBid_TooLow(t *testing.T) {
	t.Parallel()
	svc, auctionRepo, _, bus := newService(t)

	auctionRepo.On("GetForUpdate", mock.Anything, int64(1)).Return(openAuction(1), nil)

	b, a, err := svc.PlaceBid(context.Background(), 1, uuid.New(), decimal.NewFromInt(15600))
	require.Error(t, err)
	assert.ErrorIs(t, err, auction.ErrBidTooLow)
	assert.Nil(t, b)
	assert.Nil(t, a)
	assert.Empty(t, bus.Published())
}

func TestPlaceBid_AuctionEnded(t *testing.T) {
	t.Parallel()
	svc, auctionRepo, _, bus := newService(t)

	ended := openAuction(1)
	ended.Status = string(auction.StatusEnded)
	auctionRepo.On("GetForUpdate", mock.Anything, int64(1)).Return(ended, nil)

	_, _, err := svc.PlaceBid(context.Background(), 1, uuid.New(), decimal.NewFromInt(20000))
	assert.ErrorIs(t, err, auction.ErrAuctionNotActive)
	assert.Empty(t, bus.Published())
}

func TestPlaceBid_AuctionNotFound(t *testing.T) {
	t.Parallel()
	svc, auctionRepo, _, _ := newService(t)

	auctionRepo.On("GetForUpdate", mock.Anything, int64(99)).
		Return(nil, auction.ErrAuctionNotFound)

	_, _, err := svc.PlaceBid(context.Background(), 99, uuid.New(), decimal.NewFromInt(100))
	assert.ErrorIs(t, err, auction.ErrAuctionNotFound)
}

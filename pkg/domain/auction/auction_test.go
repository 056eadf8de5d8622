package auction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazadksa/mazad/pkg/domain/auction"
)

func activeAuction(currentPrice, increment string) *auction.Auction {
	return &auction.Auction{
		Status:       auction.StatusActive,
		CurrentPrice: decimal.RequireFromString(currentPrice),
		BidIncrement: decimal.RequireFromString(increment),
		Currency:     "SAR",
		EndTime:      time.Now().Add(time.Hour),
	}
}

func TestMinimumBid(t *testing.T) {
	t.Parallel()
	a := activeAuction("15500", "250")
	assert.True(t, a.MinimumBid().Equal(decimal.RequireFromString("15750")))
}

func TestCanAcceptBid_MeetsMinimum(t *testing.T) {
	t.Parallel()
	a := activeAuction("15500", "250")
	err := a.CanAcceptBid(decimal.RequireFromString("15750"), time.Now())
	assert.NoError(t, err)
}

func TestCanAcceptBid_AboveMinimum(t *testing.T) {
	t.Parallel()
	a := activeAuction("15500", "250")
	err := a.CanAcceptBid(decimal.RequireFromString("16000"), time.Now())
	assert.NoError(t, err)
}

func TestCanAcceptBid_BelowMinimum(t *testing.T) {
	t.Parallel()
	a := activeAuction("15500", "250")
	err := a.CanAcceptBid(decimal.RequireFromString("15600"), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, auction.ErrBidTooLow)
	assert.Contains(t, err.Error(), "15750.00")
}

func TestCanAcceptBid_EqualToCurrentPrice(t *testing.T) {
	t.Parallel()
	a := activeAuction("15500", "250")
	err := a.CanAcceptBid(decimal.RequireFromString("15500"), time.Now())
	assert.ErrorIs(t, err, auction.ErrBidTooLow)
}

func TestCanAcceptBid_NotActive(t *testing.T) {
	t.Parallel()
	a := activeAuction("100", "10")
	a.Status = auction.StatusEnded
	err := a.CanAcceptBid(decimal.RequireFromString("200"), time.Now())
	assert.ErrorIs(t, err, auction.ErrAuctionNotActive)
}

func TestCanAcceptBid_PastEndTime(t *testing.T) {
	t.Parallel()
	a := activeAuction("100", "10")
	a.EndTime = time.Now().Add(-time.Minute)
	err := a.CanAcceptBid(decimal.RequireFromString("200"), time.Now())
	assert.ErrorIs(t, err, auction.ErrAuctionClosed)
}

func TestCanAcceptBid_ZeroIncrement(t *testing.T) {
	t.Parallel()
	// With a zero increment any amount above the current price wins.
	a := activeAuction("100", "0")
	err := a.CanAcceptBid(decimal.RequireFromString("100.01"), time.Now())
	assert.NoError(t, err)
}

package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazadksa/mazad/pkg/domain/common"
	"github.com/mazadksa/mazad/pkg/domain/events"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryEventBus_DispatchesToRegisteredHandlers(t *testing.T) {
	t.Parallel()
	bus := NewWithMemory(discardLogger())

	var got []events.BidPlaced
	bus.Register(events.EventTypeBidPlaced, func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.BidPlaced)
		require.True(t, ok)
		got = append(got, e)
		return nil
	})

	evt := events.BidPlaced{
		BidID:     42,
		AuctionID: 1,
		BidderID:  uuid.New(),
		Amount:    decimal.NewFromInt(15750),
	}
	require.NoError(t, bus.Publish(context.Background(), evt))

	require.Len(t, got, 1)
	assert.Equal(t, int64(42), got[0].BidID)
	assert.Len(t, bus.Published(), 1)
}

func TestMemoryEventBus_SkipsOtherEventTypes(t *testing.T) {
	t.Parallel()
	bus := NewWithMemory(discardLogger())

	calls := 0
	bus.Register(events.EventTypeAuctionEnded, func(ctx context.Context, event common.Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), events.BidPlaced{BidID: 1}))
	assert.Zero(t, calls)
}

func TestMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	t.Parallel()
	bus := NewWithMemory(discardLogger())

	second := false
	bus.Register(events.EventTypeBidPlaced, func(ctx context.Context, event common.Event) error {
		return errors.New("handler failed")
	})
	bus.Register(events.EventTypeBidPlaced, func(ctx context.Context, event common.Event) error {
		second = true
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), events.BidPlaced{BidID: 1}))
	assert.True(t, second)
}

func TestMemoryEventBus_ClearPublished(t *testing.T) {
	t.Parallel()
	bus := NewWithMemory(discardLogger())

	require.NoError(t, bus.Publish(context.Background(), events.BidPlaced{BidID: 1}))
	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}

func TestMemoryAsyncEventBus_DeliversEventually(t *testing.T) {
	t.Parallel()
	bus := NewWithMemoryAsync(discardLogger())

	delivered := make(chan events.AuctionEnded, 1)
	bus.Register(events.EventTypeAuctionEnded, func(ctx context.Context, event common.Event) error {
		delivered <- event.(events.AuctionEnded)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), events.AuctionEnded{AuctionID: 5}))

	select {
	case e := <-delivered:
		assert.Equal(t, int64(5), e.AuctionID)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestDecodeEnvelope_RoundTrip(t *testing.T) {
	t.Parallel()
	prevBidder := uuid.New()
	evt := events.BidPlaced{
		BidID:        42,
		AuctionID:    1,
		CategoryID:   7,
		BidderID:     uuid.New(),
		Amount:       decimal.RequireFromString("15750.00"),
		Currency:     "SAR",
		PrevBidderID: &prevBidder,
		PrevAmount:   decimal.NewFromInt(15500),
	}
	payload, err := json.Marshal(evt)
	require.NoError(t, err)

	decoded, err := decodeEnvelope(envelope{Type: evt.Type(), Payload: payload})
	require.NoError(t, err)

	got, ok := decoded.(events.BidPlaced)
	require.True(t, ok, "decoded event must be a value, not a pointer")
	assert.Equal(t, evt.BidID, got.BidID)
	assert.True(t, got.Amount.Equal(evt.Amount))
	require.NotNil(t, got.PrevBidderID)
	assert.Equal(t, prevBidder, *got.PrevBidderID)
}

func TestDecodeEnvelope_UnknownType(t *testing.T) {
	t.Parallel()
	_, err := decodeEnvelope(envelope{Type: "Unknown", Payload: []byte(`{}`)})
	assert.Error(t, err)
}

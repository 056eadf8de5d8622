// Package lifecycle handles auction close events, telling the seller
// the auction ended and the highest bidder that they won.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mazadksa/mazad/pkg/domain/common"
	"github.com/mazadksa/mazad/pkg/domain/events"
	domainnotif "github.com/mazadksa/mazad/pkg/domain/notification"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/eventbus"
	notificationsvc "github.com/mazadksa/mazad/pkg/service/notification"
)

// NotificationHandler sends the closing notifications for an ended
// auction.
func NotificationHandler(notifications *notificationsvc.Service, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.AuctionEnded)
		if !ok {
			return nil
		}
		auctionID := e.AuctionID

		if _, err := notifications.Send(ctx, &dto.NotificationCreate{
			UserID:    e.SellerID,
			Type:      domainnotif.TypeAuctionEnd,
			Title:     "انتهى المزاد — Auction ended",
			Message:   fmt.Sprintf("Your auction closed at %s %s.", e.FinalPrice.StringFixed(2), e.Currency),
			AuctionID: &auctionID,
		}); err != nil {
			logger.Error("failed to send auction end notification", "seller_id", e.SellerID, "error", err)
		}

		if e.WinnerID != nil {
			if _, err := notifications.Send(ctx, &dto.NotificationCreate{
				UserID:    *e.WinnerID,
				Type:      domainnotif.TypeWin,
				Title:     "مبروك، لقد فزت بالمزاد — You won the auction",
				Message:   fmt.Sprintf("You won with a bid of %s %s.", e.FinalPrice.StringFixed(2), e.Currency),
				AuctionID: &auctionID,
			}); err != nil {
				logger.Error("failed to send win notification", "winner_id", *e.WinnerID, "error", err)
			}
		}
		return nil
	}
}

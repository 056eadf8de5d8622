// Package bidding contains the event handlers fanning out the side
// effects of an accepted bid: reward points, notifications, and the
// behavior log entry feeding the recommendation engine.
package bidding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mazadksa/mazad/pkg/domain/common"
	"github.com/mazadksa/mazad/pkg/domain/engagement"
	"github.com/mazadksa/mazad/pkg/domain/events"
	domainnotif "github.com/mazadksa/mazad/pkg/domain/notification"
	domainreward "github.com/mazadksa/mazad/pkg/domain/reward"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/eventbus"
	notificationsvc "github.com/mazadksa/mazad/pkg/service/notification"
	recommendationsvc "github.com/mazadksa/mazad/pkg/service/recommendation"
	rewardsvc "github.com/mazadksa/mazad/pkg/service/reward"
)

// RewardHandler credits the bidder's points for an accepted bid and
// re-evaluates achievements.
func RewardHandler(rewards *rewardsvc.Service, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.BidPlaced)
		if !ok {
			return nil
		}
		auctionID := e.AuctionID
		if _, err := rewards.AddPoints(
			ctx, e.BidderID, domainreward.PointsPerBid, domainreward.ReasonBidPlaced, &auctionID,
		); err != nil {
			logger.Error("failed to credit bid points", "bidder_id", e.BidderID, "error", err)
			return err
		}
		if _, err := rewards.CheckAndUnlockAchievements(ctx, e.BidderID); err != nil {
			logger.Error("achievement evaluation failed", "bidder_id", e.BidderID, "error", err)
			return err
		}
		return nil
	}
}

// NotificationHandler notifies the bidder of their placed bid and the
// previous highest bidder, by amount, that they were outbid.
func NotificationHandler(notifications *notificationsvc.Service, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.BidPlaced)
		if !ok {
			return nil
		}
		auctionID := e.AuctionID

		if _, err := notifications.Send(ctx, &dto.NotificationCreate{
			UserID:    e.BidderID,
			Type:      domainnotif.TypeBid,
			Title:     "تم تسجيل مزايدتك — Bid placed",
			Message:   fmt.Sprintf("Your bid of %s %s is now the highest.", e.Amount.StringFixed(2), e.Currency),
			AuctionID: &auctionID,
		}); err != nil {
			logger.Error("failed to send bid notification", "bidder_id", e.BidderID, "error", err)
		}

		if e.PrevBidderID != nil {
			if _, err := notifications.Send(ctx, &dto.NotificationCreate{
				UserID:    *e.PrevBidderID,
				Type:      domainnotif.TypeOutbid,
				Title:     "تم تجاوز مزايدتك — You were outbid",
				Message: fmt.Sprintf(
					"Your bid of %s %s was topped by %s %s.",
					e.PrevAmount.StringFixed(2), e.Currency,
					e.Amount.StringFixed(2), e.Currency,
				),
				AuctionID: &auctionID,
			}); err != nil {
				logger.Error("failed to send outbid notification", "user_id", *e.PrevBidderID, "error", err)
			}
		}
		return nil
	}
}

// BehaviorHandler appends the bid to the behavior log so the
// recommendation engine sees it.
func BehaviorHandler(recommendations *recommendationsvc.Service, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.BidPlaced)
		if !ok {
			return nil
		}
		auctionID := e.AuctionID
		categoryID := e.CategoryID
		if err := recommendations.TrackBehavior(ctx, &dto.BehaviorCreate{
			UserID:     e.BidderID,
			Action:     engagement.ActionBid,
			AuctionID:  &auctionID,
			CategoryID: &categoryID,
		}); err != nil {
			logger.Error("failed to track bid behavior", "bidder_id", e.BidderID, "error", err)
			return err
		}
		return nil
	}
}

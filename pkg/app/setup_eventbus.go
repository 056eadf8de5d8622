// Event handler registration. Every side effect of the bid, close,
// and registration flows hangs off the bus so the transactional core
// stays small.
package app

import (
	"github.com/mazadksa/mazad/pkg/domain/events"
	"github.com/mazadksa/mazad/pkg/handler/bidding"
	"github.com/mazadksa/mazad/pkg/handler/lifecycle"
	"github.com/mazadksa/mazad/pkg/handler/registration"
)

func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	logger := a.Deps.Logger

	bus.Register(
		events.EventTypeBidPlaced,
		bidding.RewardHandler(a.RewardService, logger),
	)
	bus.Register(
		events.EventTypeBidPlaced,
		bidding.NotificationHandler(a.NotificationService, logger),
	)
	bus.Register(
		events.EventTypeBidPlaced,
		bidding.BehaviorHandler(a.RecommendationService, logger),
	)

	bus.Register(
		events.EventTypeAuctionEnded,
		lifecycle.NotificationHandler(a.NotificationService, logger),
	)

	bus.Register(
		events.EventTypeUserRegistered,
		registration.WelcomeHandler(a.NotificationService, logger),
	)
}

package app

import (
	"log/slog"

	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/eventbus"
	"github.com/mazadksa/mazad/pkg/provider"
	"github.com/mazadksa/mazad/pkg/repository"
	auctionsvc "github.com/mazadksa/mazad/pkg/service/auction"
	authsvc "github.com/mazadksa/mazad/pkg/service/auth"
	biddingsvc "github.com/mazadksa/mazad/pkg/service/bidding"
	notificationsvc "github.com/mazadksa/mazad/pkg/service/notification"
	paymentsvc "github.com/mazadksa/mazad/pkg/service/payment"
	recommendationsvc "github.com/mazadksa/mazad/pkg/service/recommendation"
	rewardsvc "github.com/mazadksa/mazad/pkg/service/reward"
	usersvc "github.com/mazadksa/mazad/pkg/service/user"
)

// Deps holds the infrastructure dependencies the services are built
// from.
type Deps struct {
	Uow             repository.UnitOfWork
	EventBus        eventbus.Bus
	PaymentProvider provider.Payment
	EmailProvider   provider.Email
	TextGenerator   provider.TextGenerator
	Logger          *slog.Logger
}

// App aggregates all application services.
type App struct {
	Deps   *Deps
	Config *config.App

	AuthService           *authsvc.Service
	UserService           *usersvc.Service
	AuctionService        *auctionsvc.Service
	BiddingService        *biddingsvc.Service
	RewardService         *rewardsvc.Service
	RecommendationService *recommendationsvc.Service
	NotificationService   *notificationsvc.Service
	PaymentService        *paymentsvc.Service
}

// New builds the services and registers the event handlers with the
// bus.
func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.AuthService = authsvc.New(deps.Uow, deps.EventBus, cfg.Jwt, deps.Logger)
	app.UserService = usersvc.New(deps.Uow, deps.Logger)
	app.AuctionService = auctionsvc.New(deps.Uow, deps.EventBus, deps.Logger)
	app.BiddingService = biddingsvc.New(deps.Uow, deps.EventBus, deps.Logger)
	app.RewardService = rewardsvc.New(deps.Uow, deps.Logger)
	app.RecommendationService = recommendationsvc.New(deps.Uow, deps.TextGenerator, deps.Logger)
	app.NotificationService = notificationsvc.New(deps.Uow, deps.EmailProvider, cfg.Sendgrid.Operator, deps.Logger)
	app.PaymentService = paymentsvc.New(deps.Uow, deps.PaymentProvider, deps.Logger)

	app.setupEventBus()
	return app
}

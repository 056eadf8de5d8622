// Package initializer builds the concrete dependency set the app runs
// on: logger, database, unit of work, event bus, and providers.
package initializer

import (
	"fmt"

	"github.com/mazadksa/mazad/infra"
	infraeventbus "github.com/mazadksa/mazad/infra/eventbus"
	infraprovider "github.com/mazadksa/mazad/infra/provider"
	infrarepository "github.com/mazadksa/mazad/infra/repository"
	"github.com/mazadksa/mazad/pkg/app"
	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/eventbus"
)

// InitializeDependencies initializes all the application dependencies.
// The event bus backend is picked from configuration: Kafka when
// brokers are set, Redis when a URL is set, in-memory otherwise.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	deps := &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	deps.Uow = infrarepository.NewUoW(db)

	var bus eventbus.Bus
	switch {
	case cfg.Kafka.Brokers != "":
		bus, err = infraeventbus.NewWithKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic, "mazad", logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka event bus: %w", err)
		}
	case cfg.Redis.URL != "":
		bus, err = infraeventbus.NewWithRedis(cfg.Redis.URL, "mazad:events", "mazad", logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis event bus: %w", err)
		}
	default:
		bus = infraeventbus.NewWithMemory(logger)
	}
	deps.EventBus = bus

	deps.PaymentProvider = infraprovider.NewStripePaymentProvider(&cfg.Stripe, logger)
	deps.EmailProvider = infraprovider.NewSendgridEmailProvider(&cfg.Sendgrid, logger)
	deps.TextGenerator = infraprovider.NewOpenAITextGenerator(&cfg.OpenAI, logger)

	return deps, nil
}

// Package testutils wires the full route surface against mocked
// infrastructure so handler tests run without a database or external
// providers.
package testutils

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	infraeventbus "github.com/mazadksa/mazad/infra/eventbus"
	"github.com/mazadksa/mazad/internal/fixtures/mocks"
	"github.com/mazadksa/mazad/pkg/app"
	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/webapi"
)

// HandlerTestSuite builds a Fiber app backed by repository and
// provider mocks. Each test gets fresh mocks via SetupTest.
type HandlerTestSuite struct {
	suite.Suite

	App *fiber.App
	Cfg *config.App
	Bus *infraeventbus.MemoryEventBus

	Uow                *mocks.MockUnitOfWork
	UserRepo           *mocks.MockUserRepository
	AuctionRepo        *mocks.MockAuctionRepository
	BidRepo            *mocks.MockBidRepository
	RewardRepo         *mocks.MockRewardRepository
	NotificationRepo   *mocks.MockNotificationRepository
	PaymentRepo        *mocks.MockPaymentRepository
	EngagementRepo     *mocks.MockEngagementRepository
	RecommendationRepo *mocks.MockRecommendationRepository

	PaymentProvider *mocks.MockPaymentProvider
	EmailProvider   *mocks.MockEmailProvider
	TextGenerator   *mocks.MockTextGenerator
}

// SetupTest builds the app with fresh mocks before every test.
func (s *HandlerTestSuite) SetupTest() {
	t := s.T()

	s.UserRepo = mocks.NewMockUserRepository(t)
	s.AuctionRepo = mocks.NewMockAuctionRepository(t)
	s.BidRepo = mocks.NewMockBidRepository(t)
	s.RewardRepo = mocks.NewMockRewardRepository(t)
	s.NotificationRepo = mocks.NewMockNotificationRepository(t)
	s.PaymentRepo = mocks.NewMockPaymentRepository(t)
	s.EngagementRepo = mocks.NewMockEngagementRepository(t)
	s.RecommendationRepo = mocks.NewMockRecommendationRepository(t)
	s.Uow = mocks.NewMockUnitOfWork(t).
		WithUserRepository(s.UserRepo).
		WithAuctionRepository(s.AuctionRepo).
		WithBidRepository(s.BidRepo).
		WithRewardRepository(s.RewardRepo).
		WithNotificationRepository(s.NotificationRepo).
		WithPaymentRepository(s.PaymentRepo).
		WithEngagementRepository(s.EngagementRepo).
		WithRecommendationRepository(s.RecommendationRepo)

	s.PaymentProvider = mocks.NewMockPaymentProvider(t)
	s.EmailProvider = mocks.NewMockEmailProvider(t)
	s.TextGenerator = mocks.NewMockTextGenerator(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Bus = infraeventbus.NewWithMemory(logger)

	s.Cfg = &config.App{
		Env: "test",
		Jwt: config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		Sendgrid: config.Sendgrid{
			FromEmail: "noreply@mazad.sa",
			FromName:  "Mazad",
			Operator:  "support@mazad.sa",
		},
		RateLimit: config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}

	deps := &app.Deps{
		Uow:             s.Uow,
		EventBus:        s.Bus,
		PaymentProvider: s.PaymentProvider,
		EmailProvider:   s.EmailProvider,
		TextGenerator:   s.TextGenerator,
		Logger:          logger,
	}
	s.App = webapi.SetupApp(app.New(deps, s.Cfg))
}

// MakeRequest performs an HTTP request against the in-process app.
func (s *HandlerTestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.App.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// AuthToken signs a bearer token for the given user, matching what the
// auth service issues.
func (s *HandlerTestSuite) AuthToken(userID uuid.UUID) string {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Cfg.Jwt.Secret))
	s.Require().NoError(err)
	return token
}

// Package webapi assembles the Fiber application from the route
// packages.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mazadksa/mazad/pkg/app"
	"github.com/mazadksa/mazad/webapi/auction"
	"github.com/mazadksa/mazad/webapi/auth"
	"github.com/mazadksa/mazad/webapi/common"
	"github.com/mazadksa/mazad/webapi/contact"
	"github.com/mazadksa/mazad/webapi/payment"
	"github.com/mazadksa/mazad/webapi/recommendation"
	"github.com/mazadksa/mazad/webapi/user"
)

// SetupApp builds the Fiber app with all routes and middleware.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "Mazad API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil, "Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	fiberApp.Use(recover.New())

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.Routes(fiberApp, a.AuthService, a.Config)
	auction.Routes(fiberApp, a.AuctionService, a.BiddingService, a.AuthService, a.Config)
	user.Routes(fiberApp, a.UserService, a.RewardService, a.NotificationService, a.RecommendationService, a.AuthService, a.Config)
	recommendation.Routes(fiberApp, a.RecommendationService, a.AuthService, a.Config)
	payment.Routes(fiberApp, a.PaymentService, a.AuthService, a.Config)
	contact.Routes(fiberApp, a.NotificationService)

	return fiberApp
}

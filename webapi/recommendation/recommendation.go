package recommendation

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/middleware"
	authsvc "github.com/mazadksa/mazad/pkg/service/auth"
	recommendationsvc "github.com/mazadksa/mazad/pkg/service/recommendation"
	"github.com/mazadksa/mazad/webapi/common"
)

// Routes registers the personalized recommendation endpoints.
func Routes(
	app *fiber.App,
	recommendationSvc *recommendationsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Get("/api/recommendations", protected, List(recommendationSvc, authSvc))
	app.Post("/api/recommendations/generate", protected, Generate(recommendationSvc, authSvc))
	app.Get("/api/recommendations/insight", protected, Insight(recommendationSvc, authSvc))
	app.Post("/api/recommendations/:id/viewed", protected, MarkViewed(recommendationSvc, authSvc))
	app.Post("/api/recommendations/:id/clicked", protected, MarkClicked(recommendationSvc, authSvc))
}

// List returns the user's stored recommendation set in position
// order.
func List(recommendationSvc *recommendationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		recs, err := recommendationSvc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch recommendations", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Recommendations fetched successfully", recs)
	}
}

// Generate recomputes the recommendation set from the user's behavior
// history and replaces the stored one.
func Generate(recommendationSvc *recommendationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		limit := c.QueryInt("limit", recommendationsvc.DefaultLimit)
		recs, err := recommendationSvc.Generate(c.Context(), userID, limit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to generate recommendations", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Recommendations generated successfully", recs)
	}
}

// Insight returns a one-sentence summary of the current
// recommendation set.
func Insight(recommendationSvc *recommendationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		insight := recommendationSvc.Insight(c.Context(), userID)
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Insight generated", fiber.Map{
			"insight": insight,
		})
	}
}

// MarkViewed records that a recommendation was shown to the user.
func MarkViewed(recommendationSvc *recommendationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return markFeedback(recommendationSvc.MarkViewed, authSvc, "Recommendation marked viewed")
}

// MarkClicked records that the user opened a recommendation.
func MarkClicked(recommendationSvc *recommendationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return markFeedback(recommendationSvc.MarkClicked, authSvc, "Recommendation marked clicked")
}

func markFeedback(
	mark func(ctx context.Context, userID uuid.UUID, id int64) error,
	authSvc *authsvc.Service,
	message string,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid recommendation ID", err, fiber.StatusBadRequest)
		}
		if err := mark(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to record feedback", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, nil)
	}
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return authSvc.CurrentUserID(token)
}

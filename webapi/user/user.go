package user

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/middleware"
	authsvc "github.com/mazadksa/mazad/pkg/service/auth"
	notificationsvc "github.com/mazadksa/mazad/pkg/service/notification"
	recommendationsvc "github.com/mazadksa/mazad/pkg/service/recommendation"
	rewardsvc "github.com/mazadksa/mazad/pkg/service/reward"
	usersvc "github.com/mazadksa/mazad/pkg/service/user"
	"github.com/mazadksa/mazad/webapi/common"
)

// Routes registers the authenticated user profile, rewards, behavior,
// and notification endpoints.
func Routes(
	app *fiber.App,
	userSvc *usersvc.Service,
	rewardSvc *rewardsvc.Service,
	notificationSvc *notificationsvc.Service,
	recommendationSvc *recommendationsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Get("/api/user/profile", protected, GetProfile(userSvc, authSvc))
	app.Put("/api/user/profile", protected, UpdateProfile(userSvc, authSvc))
	app.Post("/api/user/behavior", protected, TrackBehavior(recommendationSvc, authSvc))
	app.Get("/api/user/preferences", protected, GetPreferences(recommendationSvc, authSvc))
	app.Get("/api/user/rewards", protected, GetRewards(userSvc, rewardSvc, authSvc))
	app.Get("/api/user/achievements", protected, GetAchievements(rewardSvc, authSvc))
	app.Get("/api/user/notifications", protected, ListNotifications(notificationSvc, authSvc))
	app.Post("/api/user/notifications/read-all", protected, MarkAllNotificationsRead(notificationSvc, authSvc))
	app.Post("/api/user/notifications/:id/read", protected, MarkNotificationRead(notificationSvc, authSvc))
}

// GetProfile returns the authenticated user's profile.
func GetProfile(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		u, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile fetched successfully", u)
	}
}

// UpdateProfile changes the authenticated user's name and
// notification opt-ins.
func UpdateProfile(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[UpdateProfileInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Update(c.Context(), userID, &dto.UserUpdate{
			FullName:              input.FullName,
			EmailNotifications:    input.EmailNotifications,
			SMSNotifications:      input.SMSNotifications,
			WhatsAppNotifications: input.WhatsAppNotifications,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update profile", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile updated successfully", u)
	}
}

// TrackBehavior logs one engagement action for the authenticated user
// and folds it into their interest profile.
func TrackBehavior(recommendationSvc *recommendationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[TrackBehaviorInput](c)
		if input == nil {
			return err
		}
		err = recommendationSvc.TrackBehavior(c.Context(), &dto.BehaviorCreate{
			UserID:     userID,
			Action:     input.Action,
			AuctionID:  input.AuctionID,
			CategoryID: input.CategoryID,
			Query:      input.Query,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to track behavior", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Behavior tracked", fiber.Map{
			"tracked": true,
		})
	}
}

// GetPreferences returns the derived interest profile.
func GetPreferences(recommendationSvc *recommendationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		prefs, err := recommendationSvc.Preferences(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch preferences", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Preferences fetched successfully", prefs)
	}
}

// GetRewards returns the reward counters together with the recent
// ledger entries. The counters come from the user row, which the
// reward service keeps derived from the ledger.
func GetRewards(userSvc *usersvc.Service, rewardSvc *rewardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		u, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		limit := c.QueryInt("limit", 20)
		ledger, err := rewardSvc.Ledger(c.Context(), userID, limit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch reward ledger", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rewards fetched successfully", fiber.Map{
			"rewardPoints": u.RewardPoints,
			"totalEarned":  u.TotalEarned,
			"level":        u.Level,
			"transactions": ledger,
		})
	}
}

// GetAchievements returns the achievement catalog plus the user's
// unlocked set.
func GetAchievements(rewardSvc *rewardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		catalog, unlocked, err := rewardSvc.Achievements(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch achievements", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Achievements fetched successfully", fiber.Map{
			"achievements": catalog,
			"unlocked":     unlocked,
		})
	}
}

// ListNotifications returns the user's notifications, optionally only
// the unread ones.
func ListNotifications(notificationSvc *notificationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		unreadOnly := c.Query("unread") == "true"
		notifications, err := notificationSvc.ListByUser(c.Context(), userID, unreadOnly)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications fetched successfully", notifications)
	}
}

// MarkNotificationRead marks one of the user's notifications read.
func MarkNotificationRead(notificationSvc *notificationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid notification ID", err, fiber.StatusBadRequest)
		}
		if err := notificationSvc.MarkRead(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to mark notification read", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification marked read", nil)
	}
}

// MarkAllNotificationsRead marks every notification of the user read.
func MarkAllNotificationsRead(notificationSvc *notificationsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		if err := notificationSvc.MarkAllRead(c.Context(), userID); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to mark notifications read", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "All notifications marked read", nil)
	}
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return authSvc.CurrentUserID(token)
}

// Package registration welcomes newly registered users.
package registration

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

// WelcomeHandler sends the welcome notification after registration.
func WelcomeHandler(notifications *notificationsvc.Service, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, event common.Event) error {
		e, ok := event.(events.UserRegistered)
		if !ok {
			return nil
		}
		if _, err := notifications.Send(ctx, &dto.NotificationCreate{
			UserID:  e.UserID,
			Type:    domainnotif.TypeWelcome,
			Title:   "مرحباً بك في مزاد — Welcome to Mazad",
			Message: fmt.Sprintf("Welcome %s, your account is ready.", e.Username),
		}); err != nil {
			logger.Error("failed to send welcome notification", "user_id", e.UserID, "error", err)
			return err
		}
		return nil
	}
}

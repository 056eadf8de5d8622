package contact

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	notificationsvc "github.com/mazadksa/mazad/pkg/service/notification"
	"github.com/mazadksa/mazad/webapi/common"
)

// ContactInput is a contact form submission. Field presence is
// enforced in the service so the error message stays uniform.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Routes registers the public contact form endpoint.
func Routes(app *fiber.App, notificationSvc *notificationsvc.Service) {
	app.Post("/api/contact", Submit(notificationSvc))
}

// Submit relays a contact form submission to the operator inbox.
func Submit(notificationSvc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ContactInput](c)
		if input == nil {
			return err
		}
		info, err := notificationSvc.Contact(c.Context(), input.Name, input.Email, input.Subject, input.Message)
		if errors.Is(err, notificationsvc.ErrMissingContactFields) {
			return common.ProblemDetailsJSON(c, "All fields are required", err)
		}
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to send message", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Message sent successfully", fiber.Map{
			"success":     true,
			"contactInfo": info,
		})
	}
}

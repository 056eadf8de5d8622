// Package notification implements the dispatcher: every notification is
// persisted, then the email/SMS/WhatsApp channels are attempted
// concurrently on a best-effort basis.
package notification

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/pkg/provider"
	"github.com/mazadksa/mazad/pkg/repository"
)

// ErrMissingContactFields is returned when a contact form submission
// omits any required field.
var ErrMissingContactFields = errors.New("All fields are required")

// ContactInfo is the operator contact block returned with contact form
// confirmations and embedded in email footers.
type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
	Address  string `json:"address"`
}

// OperatorContact is the platform's published contact information.
var OperatorContact = ContactInfo{
	Email:    "support@mazad.sa",
	Phone:    "+966 11 000 0000",
	WhatsApp: "+966 50 000 0000",
	Address:  "Riyadh, Saudi Arabia",
}

// Service persists notifications and fans them out to channels.
type Service struct {
	uow      repository.UnitOfWork
	email    provider.Email
	operator string // operator inbox for contact form messages
	logger   *slog.Logger
}

// New creates a notification Service.
func New(uow repository.UnitOfWork, email provider.Email, operator string, logger *slog.Logger) *Service {
	if operator == "" {
		operator = OperatorContact.Email
	}
	return &Service{uow: uow, email: email, operator: operator, logger: logger}
}

// Send persists the notification unconditionally, then attempts the
// email, SMS, and WhatsApp channels concurrently. It reports true when
// at least one channel succeeded; persistence alone does not count.
func (s *Service) Send(ctx context.Context, create *dto.NotificationCreate) (bool, error) {
	userRepo, err := s.uow.UserRepository()
	if err != nil {
		return false, err
	}
	u, err := userRepo.Get(ctx, create.UserID)
	if err != nil {
		return false, err
	}

	notifRepo, err := s.uow.NotificationRepository()
	if err != nil {
		return false, err
	}
	stored, err := notifRepo.Create(ctx, create)
	if err != nil {
		return false, err
	}

	log := s.logger.With("context", "notification.Send", "user_id", u.ID, "type", create.Type)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success bool
	)
	markSuccess := func() {
		mu.Lock()
		success = true
		mu.Unlock()
	}

	if s.email.Enabled() && u.EmailNotifications && !create.SkipEmail {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subject, body := emailTemplate(create.Type, create.Title, create.Message, u)
			if err := s.email.Send(ctx, &provider.EmailMessage{
				To:       u.Email,
				ToName:   u.FullName,
				Subject:  subject,
				HTMLBody: body,
			}); err != nil {
				log.Error("email channel failed", "error", err)
				return
			}
			if err := notifRepo.MarkEmailSent(ctx, stored.ID); err != nil {
				log.Error("failed to flag email as sent", "error", err)
			}
			markSuccess()
		}()
	}

	// SMS and WhatsApp are logged stubs pending provider integration.
	wg.Add(2)
	go func() {
		defer wg.Done()
		if u.SMSNotifications {
			log.Info("sms channel not integrated, skipping")
		}
	}()
	go func() {
		defer wg.Done()
		if u.WhatsAppNotifications {
			log.Info("whatsapp channel not integrated, skipping")
		}
	}()

	wg.Wait()
	return success, nil
}

// ListByUser returns a user's notifications newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*dto.NotificationRead, error) {
	notifRepo, err := s.uow.NotificationRepository()
	if err != nil {
		return nil, err
	}
	return notifRepo.ListByUser(ctx, userID, unreadOnly)
}

// MarkRead flags one notification as read.
func (s *Service) MarkRead(ctx context.Context, userID uuid.UUID, id int64) error {
	notifRepo, err := s.uow.NotificationRepository()
	if err != nil {
		return err
	}
	return notifRepo.MarkRead(ctx, userID, id)
}

// MarkAllRead flags all of a user's notifications as read.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	notifRepo, err := s.uow.NotificationRepository()
	if err != nil {
		return err
	}
	return notifRepo.MarkAllRead(ctx, userID)
}

// Contact handles a contact form submission: all four fields are
// required; the operator gets the message and the sender a best-effort
// auto-reply.
func (s *Service) Contact(ctx context.Context, name, email, subject, message string) (*ContactInfo, error) {
	if name == "" || email == "" || subject == "" || message == "" {
		return nil, ErrMissingContactFields
	}

	log := s.logger.With("context", "notification.Contact", "from", email)

	if s.email.Enabled() {
		if err := s.email.Send(ctx, &provider.EmailMessage{
			To:       s.operator,
			ToName:   "Mazad Support",
			Subject:  "[Contact] " + subject,
			HTMLBody: contactOperatorBody(name, email, subject, message),
			ReplyTo:  email,
		}); err != nil {
			log.Error("failed to deliver contact message to operator", "error", err)
			return nil, err
		}
		// Auto-reply is best effort.
		if err := s.email.Send(ctx, &provider.EmailMessage{
			To:       email,
			ToName:   name,
			Subject:  "استلمنا رسالتك — We received your message",
			HTMLBody: contactAutoReplyBody(name),
		}); err != nil {
			log.Warn("auto-reply failed", "error", err)
		}
	} else {
		log.Info("email channel disabled, contact message stored in logs only",
			"name", name, "subject", subject)
	}

	info := OperatorContact
	return &info, nil
}

package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mazadksa/mazad/pkg/utils"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when registering over an existing
	// username or email.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when a login attempt does not
	// match a stored credential. Unknown accounts are never provisioned
	// on login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a marketplace account holder.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Password string    `json:"-"`

	// Denormalized reward counters, recomputed from the ledger on every
	// reward write.
	RewardPoints int `json:"rewardPoints"`
	TotalEarned  int `json:"totalEarned"`
	Level        int `json:"level"`

	EmailNotifications    bool `json:"emailNotifications"`
	SMSNotifications      bool `json:"smsNotifications"`
	WhatsAppNotifications bool `json:"whatsappNotifications"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New creates a User with a bcrypt-hashed password and current
// timestamps.
func New(username, email, fullName, password string) (*User, error) {
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if !utils.IsEmail(email) {
		return nil, errors.New("email is not valid")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Username:           username,
		Email:              email,
		FullName:           fullName,
		Password:           hashed,
		Level:              1,
		EmailNotifications: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

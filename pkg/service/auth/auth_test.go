package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	infraeventbus "github.com/mazadksa/mazad/infra/eventbus"
	"github.com/mazadksa/mazad/internal/fixtures/mocks"
	"github.com/mazadksa/mazad/pkg/config"
	"github.com/mazadksa/mazad/pkg/domain/events"
	domainuser "github.com/mazadksa/mazad/pkg/domain/user"
	"github.com/mazadksa/mazad/pkg/dto"
	authsvc "github.com/mazadksa/mazad/pkg/service/auth"
)

var jwtCfg = config.Jwt{Secret: "test-secret", Expiry: time.Hour}

func newService(t *testing.T) (
	*authsvc.Service,
	*mocks.MockUserRepository,
	*infraeventbus.MemoryEventBus,
) {
	userRepo := mocks.NewMockUserRepository(t)
	uow := mocks.NewMockUnitOfWork(t).WithUserRepository(userRepo)
	bus := infraeventbus.NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := authsvc.New(uow, bus, jwtCfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, userRepo, bus
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()
	svc, userRepo, bus := newService(t)

	userRepo.On("GetByUsername", mock.Anything, "salem").
		Return(nil, domainuser.ErrUserNotFound)
	userRepo.On("GetByEmail", mock.Anything, "salem@example.com").
		Return(nil, domainuser.ErrUserNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *dto.UserCreate) bool {
		// The stored credential must be a hash, never the raw password.
		return c.Username == "salem" && c.Password != "password123"
	})).Return(nil)
	userRepo.On("Get", mock.Anything, mock.Anything).Return(&dto.UserRead{
		ID: uuid.New(), Username: "salem", Email: "salem@example.com", Level: 1,
	}, nil)

	u, token, err := svc.Register(context.Background(), "salem", "salem@example.com", "Salem", "password123")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEmpty(t, token)

	published := bus.Published()
	require.Len(t, published, 1)
	evt, ok := published[0].(events.UserRegistered)
	require.True(t, ok)
	assert.Equal(t, "salem", evt.Username)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()
	svc, userRepo, bus := newService(t)

	userRepo.On("GetByUsername", mock.Anything, "salem").Return(&dto.UserRead{
		ID: uuid.New(), Username: "salem",
	}, nil)

	u, token, err := svc.Register(context.Background(), "salem", "other@example.com", "Salem", "password123")
	assert.ErrorIs(t, err, domainuser.ErrUserExists)
	assert.Nil(t, u)
	assert.Empty(t, token)
	assert.Empty(t, bus.Published())
}

func TestLogin_ByUsername(t *testing.T) {
	t.Parallel()
	svc, userRepo, _ := newService(t)
	userID := uuid.New()

	userRepo.On("GetByUsername", mock.Anything, "salem").Return(&dto.UserRead{
		ID: userID, Username: "salem", Password: hashFor(t, "password123"),
	}, nil)

	u, token, err := svc.Login(context.Background(), "salem", "password123")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_ByEmailFallback(t *testing.T) {
	t.Parallel()
	svc, userRepo, _ := newService(t)

	userRepo.On("GetByUsername", mock.Anything, "salem@example.com").
		Return(nil, domainuser.ErrUserNotFound)
	userRepo.On("GetByEmail", mock.Anything, "salem@example.com").Return(&dto.UserRead{
		ID: uuid.New(), Username: "salem", Password: hashFor(t, "password123"),
	}, nil)

	_, token, err := svc.Login(context.Background(), "salem@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	svc, userRepo, _ := newService(t)

	userRepo.On("GetByUsername", mock.Anything, "salem").Return(&dto.UserRead{
		ID: uuid.New(), Username: "salem", Password: hashFor(t, "password123"),
	}, nil)

	u, token, err := svc.Login(context.Background(), "salem", "wrong")
	assert.ErrorIs(t, err, domainuser.ErrInvalidCredentials)
	assert.Nil(t, u)
	assert.Empty(t, token)
}

func TestLogin_UnknownIdentityNeverProvisions(t *testing.T) {
	t.Parallel()
	svc, userRepo, _ := newService(t)

	userRepo.On("GetByUsername", mock.Anything, "ghost").
		Return(nil, domainuser.ErrUserNotFound)
	userRepo.On("GetByEmail", mock.Anything, "ghost").
		Return(nil, domainuser.ErrUserNotFound)

	u, token, err := svc.Login(context.Background(), "ghost", "password123")
	assert.ErrorIs(t, err, domainuser.ErrInvalidCredentials)
	assert.Nil(t, u)
	assert.Empty(t, token)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCurrentUserID(t *testing.T) {
	t.Parallel()
	svc, userRepo, _ := newService(t)
	userID := uuid.New()

	userRepo.On("GetByUsername", mock.Anything, "salem").Return(&dto.UserRead{
		ID: userID, Username: "salem", Password: hashFor(t, "password123"),
	}, nil)

	_, tokenString, err := svc.Login(context.Background(), "salem", "password123")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(jwtCfg.Secret), nil
	})
	require.NoError(t, err)

	got, err := svc.CurrentUserID(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestCurrentUserID_MissingClaim(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{})
	_, err := svc.CurrentUserID(token)
	assert.ErrorIs(t, err, domainuser.ErrInvalidCredentials)
}

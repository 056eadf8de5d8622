package auth_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mazadksa/mazad/pkg/domain/events"
	domainuser "github.com/mazadksa/mazad/pkg/domain/user"
	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/webapi/common"
	"github.com/mazadksa/mazad/webapi/testutils"
)

type AuthRoutesTestSuite struct {
	testutils.HandlerTestSuite
}

func TestAuthRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(AuthRoutesTestSuite))
}

func (s *AuthRoutesTestSuite) userFixture(password string) *dto.UserRead {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	s.Require().NoError(err)
	return &dto.UserRead{
		ID:                 uuid.New(),
		Username:           "salem",
		Email:              "salem@example.com",
		FullName:           "Salem Alotaibi",
		Password:           string(hash),
		Level:              1,
		EmailNotifications: true,
		CreatedAt:          time.Now().UTC(),
	}
}

func (s *AuthRoutesTestSuite) TestRegister_Created() {
	s.UserRepo.On("GetByUsername", mock.Anything, "salem").
		Return(nil, domainuser.ErrUserNotFound)
	s.UserRepo.On("GetByEmail", mock.Anything, "salem@example.com").
		Return(nil, domainuser.ErrUserNotFound)
	s.UserRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.UserRepo.On("Get", mock.Anything, mock.Anything).
		Return(s.userFixture("str0ngpass"), nil)
	// Welcome notification fans out from the UserRegistered event.
	s.NotificationRepo.On("Create", mock.Anything, mock.Anything).
		Return(&dto.NotificationRead{ID: 1}, nil)
	s.EmailProvider.On("Enabled").Return(false)

	body := `{"username":"salem","email":"salem@example.com","fullName":"Salem Alotaibi","password":"str0ngpass"}`
	resp := s.MakeRequest(http.MethodPost, "/api/auth/register", body, "")
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusCreated, resp.StatusCode)

	var response common.Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))
	data, ok := response.Data.(map[string]any)
	s.Require().True(ok)
	s.NotEmpty(data["token"])

	published := s.Bus.Published()
	s.Require().Len(published, 1)
	_, ok = published[0].(events.UserRegistered)
	s.True(ok)
}

func (s *AuthRoutesTestSuite) TestRegister_DuplicateUsername() {
	s.UserRepo.On("GetByUsername", mock.Anything, "salem").
		Return(s.userFixture("str0ngpass"), nil)

	body := `{"username":"salem","email":"salem@example.com","fullName":"Salem Alotaibi","password":"str0ngpass"}`
	resp := s.MakeRequest(http.MethodPost, "/api/auth/register", body, "")
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Empty(s.Bus.Published())
}

func (s *AuthRoutesTestSuite) TestRegister_ValidationFailed() {
	body := `{"username":"x","email":"not-an-email","password":"short"}`
	resp := s.MakeRequest(http.MethodPost, "/api/auth/register", body, "")
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *AuthRoutesTestSuite) TestLogin_Success() {
	u := s.userFixture("str0ngpass")
	s.UserRepo.On("GetByUsername", mock.Anything, "salem").Return(u, nil)

	resp := s.MakeRequest(http.MethodPost, "/api/auth/login", `{"identity":"salem","password":"str0ngpass"}`, "")
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusOK, resp.StatusCode)

	var response common.Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))
	data, ok := response.Data.(map[string]any)
	s.Require().True(ok)
	s.NotEmpty(data["token"])
}

func (s *AuthRoutesTestSuite) TestLogin_UnknownIdentity() {
	s.UserRepo.On("GetByUsername", mock.Anything, "ghost").
		Return(nil, domainuser.ErrUserNotFound)
	s.UserRepo.On("GetByEmail", mock.Anything, "ghost").
		Return(nil, domainuser.ErrUserNotFound)

	resp := s.MakeRequest(http.MethodPost, "/api/auth/login", `{"identity":"ghost","password":"whatever"}`, "")
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.UserRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *AuthRoutesTestSuite) TestLogin_WrongPassword() {
	u := s.userFixture("str0ngpass")
	s.UserRepo.On("GetByUsername", mock.Anything, "salem").Return(u, nil)

	resp := s.MakeRequest(http.MethodPost, "/api/auth/login", `{"identity":"salem","password":"wrong"}`, "")
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthRoutesTestSuite) TestCurrentUser() {
	u := s.userFixture("str0ngpass")
	s.UserRepo.On("Get", mock.Anything, u.ID).Return(u, nil)

	resp := s.MakeRequest(http.MethodGet, "/api/auth/user", "", s.AuthToken(u.ID))
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusOK, resp.StatusCode)

	var response common.Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))
	data, ok := response.Data.(map[string]any)
	s.Require().True(ok)
	s.Equal("salem", data["username"])
}

package user_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mazadksa/mazad/pkg/dto"
	"github.com/mazadksa/mazad/webapi/common"
	"github.com/mazadksa/mazad/webapi/testutils"
)

type UserRoutesTestSuite struct {
	testutils.HandlerTestSuite
}

func TestUserRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(UserRoutesTestSuite))
}

func (s *UserRoutesTestSuite) TestGetRewards() {
	userID := uuid.New()
	s.UserRepo.On("Get", mock.Anything, userID).
		Return(&dto.UserRead{ID: userID, Username: "salem", RewardPoints: 40, TotalEarned: 70, Level: 3}, nil)
	s.RewardRepo.On("ListByUser", mock.Anything, userID, 20).
		Return([]*dto.RewardRead{
			{ID: 2, UserID: userID, Points: 20, Reason: "bid_placed"},
			{ID: 1, UserID: userID, Points: 50, Reason: "bid_placed"},
		}, nil)

	resp := s.MakeRequest(http.MethodGet, "/api/user/rewards", "", s.AuthToken(userID))
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusOK, resp.StatusCode)

	var response common.Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))
	data, ok := response.Data.(map[string]any)
	s.Require().True(ok)
	s.EqualValues(40, data["rewardPoints"])
	s.EqualValues(70, data["totalEarned"])
	s.EqualValues(3, data["level"])
	transactions, ok := data["transactions"].([]any)
	s.Require().True(ok)
	s.Len(transactions, 2)
}

func (s *UserRoutesTestSuite) TestGetNotifications_UnreadOnly() {
	userID := uuid.New()
	s.NotificationRepo.On("ListByUser", mock.Anything, userID, true).
		Return([]*dto.NotificationRead{{ID: 5, UserID: userID, Type: "bid"}}, nil)

	resp := s.MakeRequest(http.MethodGet, "/api/user/notifications?unread=true", "", s.AuthToken(userID))
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotificationRepo.AssertCalled(s.T(), "ListByUser", mock.Anything, userID, true)
}

func (s *UserRoutesTestSuite) TestMarkNotificationRead() {
	userID := uuid.New()
	s.NotificationRepo.On("MarkRead", mock.Anything, userID, int64(5)).Return(nil)

	resp := s.MakeRequest(http.MethodPost, "/api/user/notifications/5/read", "", s.AuthToken(userID))
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *UserRoutesTestSuite) TestUpdateProfile() {
	userID := uuid.New()
	s.UserRepo.On("Update", mock.Anything, userID, mock.MatchedBy(func(u *dto.UserUpdate) bool {
		return u.FullName != nil && *u.FullName == "Salem A."
	})).Return(nil)
	s.UserRepo.On("Get", mock.Anything, userID).
		Return(&dto.UserRead{ID: userID, Username: "salem", FullName: "Salem A."}, nil)

	resp := s.MakeRequest(http.MethodPut, "/api/user/profile", `{"fullName":"Salem A."}`, s.AuthToken(userID))
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *UserRoutesTestSuite) TestProfile_Unauthorized() {
	resp := s.MakeRequest(http.MethodGet, "/api/user/profile", "", "")
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

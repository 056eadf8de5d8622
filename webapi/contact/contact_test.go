package contact_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mazadksa/mazad/pkg/provider"
	"github.com/mazadksa/mazad/webapi/common"
	"github.com/mazadksa/mazad/webapi/testutils"
)

type ContactRoutesTestSuite struct {
	testutils.HandlerTestSuite
}

func TestContactRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(ContactRoutesTestSuite))
}

func (s *ContactRoutesTestSuite) TestSubmit_MissingFields() {
	resp := s.MakeRequest(http.MethodPost, "/api/contact", `{"name":"Noor","email":"noor@example.com"}`, "")
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	s.Equal("All fields are required", pd.Title)
}

func (s *ContactRoutesTestSuite) TestSubmit_DeliversToOperator() {
	s.EmailProvider.On("Enabled").Return(true)
	var recipients []string
	s.EmailProvider.On("Send", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			msg := args.Get(1).(*provider.EmailMessage)
			recipients = append(recipients, msg.To)
		}).
		Return(nil)

	body := `{"name":"Noor","email":"noor@example.com","subject":"Question","message":"When does the watch auction end?"}`
	resp := s.MakeRequest(http.MethodPost, "/api/contact", body, "")
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal([]string{"support@mazad.sa", "noor@example.com"}, recipients)

	var response common.Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&response))
	data, ok := response.Data.(map[string]any)
	s.Require().True(ok)
	s.Equal(true, data["success"])
	info, ok := data["contactInfo"].(map[string]any)
	s.Require().True(ok)
	s.Equal("support@mazad.sa", info["email"])
}

func (s *ContactRoutesTestSuite) TestSubmit_EmailDisabledStillSucceeds() {
	s.EmailProvider.On("Enabled").Return(false)

	body := `{"name":"Noor","email":"noor@example.com","subject":"Question","message":"Hello"}`
	resp := s.MakeRequest(http.MethodPost, "/api/contact", body, "")
	defer resp.Body.Close() //nolint: errcheck

	s.Equal(http.StatusOK, resp.StatusCode)
	s.EmailProvider.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

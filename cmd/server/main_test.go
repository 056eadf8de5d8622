package main_test

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mazadksa/mazad/webapi/testutils"
)

// TestMain runs before any tests and applies globally for all tests in
// the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

type MainTestSuite struct {
	testutils.HandlerTestSuite
}

func TestMainTestSuite(t *testing.T) {
	suite.Run(t, new(MainTestSuite))
}

func (s *MainTestSuite) TestHealthRoute() {
	resp := s.MakeRequest(http.MethodGet, "/health", "", "")
	defer resp.Body.Close() //nolint: errcheck
	if resp.StatusCode != http.StatusOK {
		s.T().Fatalf("expected status code %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func (s *MainTestSuite) TestProtectedRoute_Unauthorized() {
	resp := s.MakeRequest(http.MethodGet, "/api/user/profile", "", "")
	defer resp.Body.Close() //nolint: errcheck
	if resp.StatusCode != http.StatusUnauthorized {
		s.T().Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}
}

func (s *MainTestSuite) TestNotFoundRoute() {
	resp := s.MakeRequest(http.MethodGet, "/doesnotexist", "", "")
	defer resp.Body.Close() //nolint: errcheck
	if resp.StatusCode != http.StatusNotFound {
		s.T().Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func (s *MainTestSuite) TestLoginRoute_BadRequest() {
	resp := s.MakeRequest(http.MethodPost, "/api/auth/login", "", "")
	defer resp.Body.Close() //nolint: errcheck
	if resp.StatusCode != http.StatusBadRequest {
		s.T().Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

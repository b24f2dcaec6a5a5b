package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"financetracker/internal/config"
	"financetracker/internal/errors"
	"financetracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

type AuthMiddlewareSuite struct {
	suite.Suite
	tokenService services.TokenServiceInterface
	e            *echo.Echo
}

func (s *AuthMiddlewareSuite) SetupTest() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.tokenService = services.NewTokenService(&config.JWTConfig{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
		Issuer:     "finance-identity",
	})
	s.e = echo.New()
}

func (s *AuthMiddlewareSuite) request(authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return rec, s.e.NewContext(req, rec)
}

func (s *AuthMiddlewareSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ValidToken() {
	userID := uuid.New()
	token, err := s.tokenService.GenerateAccessToken(userID, "user@example.com")
	s.Require().NoError(err)

	rec, c := s.request("Bearer " + token)

	called := false
	handler := RequireAuth(s.tokenService)(func(c echo.Context) error {
		called = true
		s.Equal(userID, c.Get("user_id"))
		s.Equal("user@example.com", c.Get("user_email"))
		return c.NoContent(http.StatusOK)
	})

	s.NoError(handler(c))
	s.True(called)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MissingHeader() {
	rec, c := s.request("")

	handler := RequireAuth(s.tokenService)(func(c echo.Context) error {
		s.Fail("handler should not be called")
		return nil
	})

	s.NoError(handler(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthMissingToken), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MalformedHeader() {
	rec, c := s.request("Token abc")

	handler := RequireAuth(s.tokenService)(func(c echo.Context) error { return nil })

	s.NoError(handler(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthInvalidTokenFormat), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_InvalidToken() {
	rec, c := s.request("Bearer not.a.token")

	handler := RequireAuth(s.tokenService)(func(c echo.Context) error { return nil })

	s.NoError(handler(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(errors.AuthInvalidTokenFormat), s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_TokenFromDifferentKey() {
	otherPrivate, otherPublic, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)
	other := services.NewTokenService(&config.JWTConfig{
		PrivateKey: otherPrivate,
		PublicKey:  otherPublic,
		Issuer:     "finance-identity",
	})

	token, err := other.GenerateAccessToken(uuid.New(), "user@example.com")
	s.Require().NoError(err)

	rec, c := s.request("Bearer " + token)

	handler := RequireAuth(s.tokenService)(func(c echo.Context) error { return nil })

	s.NoError(handler(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

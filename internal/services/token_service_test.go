package services

import (
	"testing"
	"time"

	"financetracker/internal/config"
	"financetracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// TokenServiceSuite defines the test suite for the token service
type TokenServiceSuite struct {
	suite.Suite
	cfg     config.JWTConfig
	service TokenServiceInterface
}

// SetupSuite runs once before the suite; key generation is slow enough to share
func (s *TokenServiceSuite) SetupSuite() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.cfg = config.JWTConfig{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
		Issuer:     "finance-identity",
	}
	s.service = NewTokenService(&s.cfg)
}

// TestTokenServiceSuite runs the test suite
func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceSuite))
}

func (s *TokenServiceSuite) TestGenerateAndValidate() {
	userID := uuid.New()

	tokenString, err := s.service.GenerateAccessToken(userID, "user@example.com")
	s.Require().NoError(err)
	s.NotEmpty(tokenString)

	claims, err := s.service.ValidateAccessToken(tokenString)

	s.NoError(err)
	s.Equal(userID.String(), claims.UserID)
	s.Equal("user@example.com", claims.Email)
	s.Equal(TokenTypeAccess, claims.TokenType)
	s.Equal("finance-identity", claims.Issuer)
	s.True(claims.ExpiresAt.After(time.Now()))
}

func (s *TokenServiceSuite) TestGenerateAccessToken_NilUserID() {
	_, err := s.service.GenerateAccessToken(uuid.Nil, "user@example.com")

	s.Error(err)
}

func (s *TokenServiceSuite) TestGenerateAccessToken_NoSigningKey() {
	verifyOnly := NewTokenService(&config.JWTConfig{
		PublicKey: s.cfg.PublicKey,
		Issuer:    s.cfg.Issuer,
	})

	_, err := verifyOnly.GenerateAccessToken(uuid.New(), "user@example.com")

	s.ErrorIs(err, ErrNoSigningKey)
}

func (s *TokenServiceSuite) TestValidateAccessToken_Empty() {
	_, err := s.service.ValidateAccessToken("")

	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceSuite) TestValidateAccessToken_Garbage() {
	_, err := s.service.ValidateAccessToken("not.a.token")

	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceSuite) TestValidateAccessToken_Expired() {
	tokenString := s.signToken(func(claims *models.CustomClaims) {
		claims.IssuedAt = jwt.NewNumericDate(time.Now().Add(-2 * time.Hour))
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		claims.NotBefore = jwt.NewNumericDate(time.Now().Add(-2 * time.Hour))
	})

	_, err := s.service.ValidateAccessToken(tokenString)

	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceSuite) TestValidateAccessToken_WrongIssuer() {
	tokenString := s.signToken(func(claims *models.CustomClaims) {
		claims.Issuer = "someone-else"
	})

	_, err := s.service.ValidateAccessToken(tokenString)

	s.ErrorIs(err, ErrInvalidIssuer)
}

func (s *TokenServiceSuite) TestValidateAccessToken_WrongTokenType() {
	tokenString := s.signToken(func(claims *models.CustomClaims) {
		claims.TokenType = "refresh"
	})

	_, err := s.service.ValidateAccessToken(tokenString)

	s.ErrorIs(err, ErrInvalidTokenType)
}

func (s *TokenServiceSuite) TestValidateAccessToken_WrongKey() {
	otherPrivate, _, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	other := NewTokenService(&config.JWTConfig{
		PrivateKey: otherPrivate,
		PublicKey:  &otherPrivate.PublicKey,
		Issuer:     s.cfg.Issuer,
	})
	tokenString, err := other.GenerateAccessToken(uuid.New(), "user@example.com")
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(tokenString)

	s.ErrorIs(err, ErrInvalidToken)
}

// signToken builds a valid token and lets the test mutate the claims before signing
func (s *TokenServiceSuite) signToken(mutate func(*models.CustomClaims)) string {
	now := time.Now()
	claims := models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   uuid.New().String(),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			NotBefore: jwt.NewNumericDate(now),
		},
		UserID:    uuid.New().String(),
		Email:     "user@example.com",
		TokenType: TokenTypeAccess,
	}
	mutate(&claims)

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.cfg.PrivateKey)
	s.Require().NoError(err)
	return tokenString
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
		wantErr  bool
	}{
		{"valid bearer", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase bearer", "bearer abc.def.ghi", "abc.def.ghi", false},
		{"empty header", "", "", true},
		{"missing prefix", "abc.def.ghi", "", true},
		{"prefix only", "Bearer ", "", true},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}

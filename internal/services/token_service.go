package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"inventory/internal/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// Claims is the payload of an access token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.StandardClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithTokenClock overrides the clock used for issuing and verifying tokens.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret, issuer, audience string, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for user and returns it together with its expiry.
func (s *TokenService) Issue(user *models.User) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(TokenTTL)

	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		StandardClaims: jwt.StandardClaims{
			Audience:  s.audience,
			ExpiresAt: expiresAt.Unix(),
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, time.Unix(expiresAt.Unix(), 0).UTC(), nil
}

// Validate parses tokenString and checks its signature, issuer, audience and
// lifetime against the service clock with no leeway.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	parser := &jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	now := s.now().Unix()
	switch {
	case !claims.VerifyExpiresAt(now, true):
		return nil, errors.New("invalid token: token is expired")
	case !claims.VerifyIssuedAt(now, true):
		return nil, errors.New("invalid token: token used before issued")
	case !claims.VerifyNotBefore(now, false):
		return nil, errors.New("invalid token: token is not valid yet")
	case !claims.VerifyIssuer(s.issuer, true):
		return nil, errors.New("invalid token: unexpected issuer")
	case !claims.VerifyAudience(s.audience, true):
		return nil, errors.New("invalid token: unexpected audience")
	}
	return claims, nil
}

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidAPIKey = errors.New("invalid api key")

const DefaultTokenTTL = 12 * time.Hour

// AuthService exchanges the operator API key for short-lived HS256 tokens
// accepted by the tool endpoints.
type AuthService struct {
	keyHash []byte
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

func NewAuthService(keyHash, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{keyHash: []byte(keyHash), secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue checks apiKey against the configured bcrypt hash and returns a token
// whose subject names the calling client.
func (s *AuthService) Issue(apiKey, client string) (string, time.Time, error) {
	if len(s.keyHash) == 0 || bcrypt.CompareHashAndPassword(s.keyHash, []byte(apiKey)) != nil {
		return "", time.Time{}, ErrInvalidAPIKey
	}

	now := s.now()
	expires := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   client,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

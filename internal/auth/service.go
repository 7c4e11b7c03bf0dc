// Package auth guards a personal instance with one configured account.
// Credentials live in configuration (email plus bcrypt hash); successful
// logins get a short-lived HS256 token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/financeflow/internal"
)

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	email        string
	passwordHash string
	secret       []byte
	tokenTTL     time.Duration
}

func NewService(cfg internal.AuthConfig) *Service {
	ttl := cfg.AccessTokenDuration
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		email:        cfg.Email,
		passwordHash: cfg.PasswordHash,
		secret:       []byte(cfg.SessionSecret),
		tokenTTL:     ttl,
	}
}

// Authenticate validates credentials and returns a signed token.
func (s *Service) Authenticate(dto LoginDTO) (AuthToken, error) {
	if err := dto.Validate(); err != nil {
		return AuthToken{}, err
	}

	if dto.Email != s.email {
		return AuthToken{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(dto.Password)); err != nil {
		return AuthToken{}, internal.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := &Claims{
		Email: dto.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   dto.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return AuthToken{}, err
	}

	return AuthToken{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses and verifies an access token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

// HashPassword generates a bcrypt hash for the configured password;
// used by the hash-password CLI helper.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

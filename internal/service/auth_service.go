package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stemsi/course-marketplace/internal/config"
	"github.com/stemsi/course-marketplace/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnknownPrincipal   = errors.New("unknown principal kind")
)

// Claims is the signed claim set. Subject carries the principal's email and
// Audience carries the principal kind.
type Claims struct {
	jwt.RegisteredClaims
}

// Email returns the authenticated principal's email.
func (c *Claims) Email() string {
	return c.Subject
}

// AuthService handles password hashing and token issuance/verification for both principal kinds.
type AuthService struct {
	secrets    map[model.PrincipalKind][]byte
	expiry     time.Duration
	bcryptCost int
	now        func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		secrets: map[model.PrincipalKind][]byte{
			model.PrincipalAdmin: []byte(cfg.AdminJWTSecret),
			model.PrincipalUser:  []byte(cfg.UserJWTSecret),
		},
		expiry:     cfg.JWTExpiry,
		bcryptCost: cfg.BcryptCost,
		now:        time.Now,
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
// bcrypt salts every call, so equal passwords never share a hash.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateToken signs a token for the principal's email with the kind's own secret.
func (s *AuthService) GenerateToken(kind model.PrincipalKind, email string) (string, error) {
	secret, ok := s.secrets[kind]
	if !ok {
		return "", ErrUnknownPrincipal
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   email,
			Audience:  jwt.ClaimStrings{string(kind)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, expiry and audience against the kind's secret.
// A token issued for the other kind fails both the signature and the audience check.
func (s *AuthService) ValidateToken(kind model.PrincipalKind, tokenStr string) (*Claims, error) {
	secret, ok := s.secrets[kind]
	if !ok {
		return nil, ErrUnknownPrincipal
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithAudience(string(kind)),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

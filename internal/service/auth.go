package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/bundle-service/internal/domain/dto"
)

// RoleAdmin is the role required by the bundle admin endpoints.
const RoleAdmin = "admin"

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when a token is malformed, expired or forged.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrAuthNotConfigured is returned when no admin account is configured.
	ErrAuthNotConfigured = errors.New("admin account is not configured")
)

// dummyHash keeps Login timing the same for unknown emails.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-the-password"), bcrypt.MinCost)

// AuthService authenticates the bundle admin.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.TokenPair, *dto.Claims, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
}

// AdminAccount is the single configured admin identity.
type AdminAccount struct {
	Email        string
	PasswordHash string
}

// AuthServiceImpl checks credentials against one bcrypt-hashed admin account.
type AuthServiceImpl struct {
	account AdminAccount
	tokens  TokenService
}

// NewAuthService creates an admin auth service.
func NewAuthService(account AdminAccount, tokens TokenService) *AuthServiceImpl {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	return &AuthServiceImpl{account: account, tokens: tokens}
}

// Login verifies the credentials and issues an admin token.
func (s *AuthServiceImpl) Login(_ context.Context, email, password string) (*dto.TokenPair, *dto.Claims, error) {
	if s.account.Email == "" || s.account.PasswordHash == "" {
		return nil, nil, ErrAuthNotConfigured
	}

	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.account.Email)) == 1

	hash := []byte(s.account.PasswordHash)
	if !emailOK {
		hash = dummyHash
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !emailOK {
		log.Warn().Str("email", email).Msg("Admin login rejected")
		return nil, nil, ErrInvalidCredentials
	}

	claims := dto.Claims{Subject: s.account.Email, Email: s.account.Email, Roles: []string{RoleAdmin}}
	pair, err := s.tokens.Issue(claims)
	if err != nil {
		return nil, nil, err
	}
	return pair, &claims, nil
}

// ValidateToken returns the claims of a valid token.
func (s *AuthServiceImpl) ValidateToken(_ context.Context, tokenString string) (*dto.Claims, error) {
	return s.tokens.Validate(tokenString)
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

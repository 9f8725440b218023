package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/bundle-service/internal/domain/dto"
)

// TokenService issues and validates admin access tokens.
type TokenService interface {
	Issue(claims dto.Claims) (*dto.TokenPair, error)
	Validate(tokenString string) (*dto.Claims, error)
}

// TokenConfig configures HS256 token signing.
type TokenConfig struct {
	SecretKey      string
	Issuer         string
	AccessTokenTTL time.Duration
}

// adminClaims is the signed token body.
type adminClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenServiceImpl implements TokenService with golang-jwt.
type TokenServiceImpl struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates a token service.
func NewTokenService(cfg TokenConfig) *TokenServiceImpl {
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenServiceImpl{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Issue signs an access token carrying claims.
func (s *TokenServiceImpl) Issue(claims dto.Claims) (*dto.TokenPair, error) {
	if claims.Subject == "" {
		return nil, errors.New("token subject is empty")
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Email: claims.Email,
		Roles: claims.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &dto.TokenPair{AccessToken: signed, ExpiresIn: int64(s.ttl.Seconds())}, nil
}

// Validate parses tokenString and returns its claims, or ErrInvalidToken.
func (s *TokenServiceImpl) Validate(tokenString string) (*dto.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var parsed adminClaims
	token, err := jwt.ParseWithClaims(tokenString, &parsed, func(*jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &dto.Claims{Subject: parsed.Subject, Email: parsed.Email, Roles: parsed.Roles}, nil
}

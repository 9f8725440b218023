// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/bundle-service/internal/domain/dto"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*dto.TokenPair, *dto.Claims, error) {
	args := m.Called(ctx, email, password)
	pair, _ := args.Get(0).(*dto.TokenPair)
	claims, _ := args.Get(1).(*dto.Claims)
	return pair, claims, args.Error(2)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	args := m.Called(ctx, tokenString)
	claims, _ := args.Get(0).(*dto.Claims)
	return claims, args.Error(1)
}

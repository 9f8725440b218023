// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/bundle-service/internal/domain/model"
)

type MockBundleRepositoryInterface struct {
	mock.Mock
}

func (m *MockBundleRepositoryInterface) List(ctx context.Context) ([]model.Bundle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bundle), args.Error(1)
}

func (m *MockBundleRepositoryInterface) FindBySlug(ctx context.Context, slug string) (*model.Bundle, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bundle), args.Error(1)
}

func (m *MockBundleRepositoryInterface) Create(ctx context.Context, bundle *model.Bundle) error {
	args := m.Called(ctx, bundle)
	return args.Error(0)
}

func (m *MockBundleRepositoryInterface) Update(ctx context.Context, bundle *model.Bundle) error {
	args := m.Called(ctx, bundle)
	return args.Error(0)
}

func (m *MockBundleRepositoryInterface) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

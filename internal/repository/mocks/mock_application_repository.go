package mocks

import (
	"context"

	"uploadtest/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *model.StoredApplication) (*model.StoredApplication, error) {
	args := m.Called(ctx, app)
	if f, ok := args.Get(0).(func(context.Context, *model.StoredApplication) *model.StoredApplication); ok {
		return f(ctx, app), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoredApplication), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id string) (*model.StoredApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoredApplication), args.Error(1)
}

func (m *MockApplicationRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

package mocks

import (
	"context"

	"uploadtest/internal/model"
	"uploadtest/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Submit(ctx context.Context, in service.SubmitInput) (*model.UploadResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadResponse), args.Error(1)
}

func (m *MockApplicationService) Get(ctx context.Context, id string) (*model.StoredApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoredApplication), args.Error(1)
}

func (m *MockApplicationService) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

package mocks

import (
	"context"
	"io"

	"uploadtest/internal/model"
	"uploadtest/internal/uploader"

	"github.com/stretchr/testify/mock"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, token string, app model.Application, document io.Reader) (*uploader.Response, error) {
	args := m.Called(ctx, token, app, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploader.Response), args.Error(1)
}

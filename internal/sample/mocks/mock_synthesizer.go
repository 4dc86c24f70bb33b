package mocks

import (
	"context"

	"uploadtest/internal/sample"

	"github.com/stretchr/testify/mock"
)

type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context) (sample.Image, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(sample.Image), args.Bool(1), args.Error(2)
}

type MockFinder struct {
	mock.Mock
}

func (m *MockFinder) Find() (sample.Image, bool, error) {
	args := m.Called()
	return args.Get(0).(sample.Image), args.Bool(1), args.Error(2)
}

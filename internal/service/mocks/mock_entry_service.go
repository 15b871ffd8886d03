package mocks

import (
	"context"

	"entryapi/internal/model"
	"entryapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) Create(ctx context.Context, in service.CreateEntryInput) (*model.Entry, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *MockEntryService) List(ctx context.Context) ([]model.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Entry), args.Error(1)
}

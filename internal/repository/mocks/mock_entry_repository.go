package mocks

import (
	"context"

	"entryapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(ctx context.Context, content string) (*model.Entry, error) {
	args := m.Called(ctx, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *MockEntryRepository) List(ctx context.Context) ([]model.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Entry), args.Error(1)
}

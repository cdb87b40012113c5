package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront/internal/store"
)

type MockStore struct {
	Tables map[string]*MockTable
}

func NewMockStore(tables ...string) *MockStore {
	s := &MockStore{Tables: map[string]*MockTable{}}
	for _, name := range tables {
		s.Tables[name] = new(MockTable)
	}
	return s
}

func (s *MockStore) Table(name string) store.Table {
	t, ok := s.Tables[name]
	if !ok {
		t = new(MockTable)
		s.Tables[name] = t
	}
	return t
}

type MockTable struct {
	mock.Mock
}

func (m *MockTable) Select(ctx context.Context, filterFormula string) ([]store.Record, error) {
	args := m.Called(ctx, filterFormula)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Record), args.Error(1)
}

func (m *MockTable) Find(ctx context.Context, id string) (store.Record, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.Record), args.Error(1)
}

func (m *MockTable) Create(ctx context.Context, fields map[string]any) (store.Record, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(store.Record), args.Error(1)
}

func (m *MockTable) Update(ctx context.Context, id string, fields map[string]any) (store.Record, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(store.Record), args.Error(1)
}

func (m *MockTable) Destroy(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event string, data any) error {
	args := m.Called(ctx, event, data)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

// MockMutationStore is a record store that also persists single mutations.
type MockMutationStore struct {
	MockRecordStore
}

func NewMockMutationStore(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockMutationStore {
	m := &MockMutationStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMutationStore) ApplyMutation(ctx context.Context, mut model.Mutation) error {
	ret := m.Called(ctx, mut)

	if fn, ok := ret.Get(0).(func(context.Context, model.Mutation) error); ok {
		return fn(ctx, mut)
	}
	return ret.Error(0)
}

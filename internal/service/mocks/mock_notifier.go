package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

type MockNotifier struct {
	mock.Mock
}

func NewMockNotifier(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockNotifier {
	m := &MockNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockNotifier) NotifyRegistered(ctx context.Context, rec model.Record) error {
	ret := m.Called(ctx, rec)
	return ret.Error(0)
}

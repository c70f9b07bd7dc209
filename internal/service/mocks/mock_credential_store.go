package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

type MockCredentialStore struct {
	mock.Mock
}

func NewMockCredentialStore(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockCredentialStore {
	m := &MockCredentialStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCredentialStore) Authenticate(ctx context.Context, role model.Role, creds model.Credentials) (bool, error) {
	ret := m.Called(ctx, role, creds)
	return ret.Bool(0), ret.Error(1)
}

package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockAttachmentStore struct {
	mock.Mock
}

func NewMockAttachmentStore(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockAttachmentStore {
	m := &MockAttachmentStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAttachmentStore) Store(ctx context.Context, content io.Reader, suggestedName string) (string, error) {
	ret := m.Called(ctx, content, suggestedName)
	return ret.String(0), ret.Error(1)
}

func (m *MockAttachmentStore) Exists(ctx context.Context, path string) (bool, error) {
	ret := m.Called(ctx, path)
	return ret.Bool(0), ret.Error(1)
}

func (m *MockAttachmentStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	ret := m.Called(ctx, path)

	var rc io.ReadCloser
	if v := ret.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, ret.Error(1)
}

func (m *MockAttachmentStore) Delete(ctx context.Context, path string) error {
	ret := m.Called(ctx, path)
	return ret.Error(0)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

type MockRecordStore struct {
	mock.Mock
}

func NewMockRecordStore(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockRecordStore {
	m := &MockRecordStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRecordStore) Load(ctx context.Context) ([]model.Record, error) {
	ret := m.Called(ctx)

	if fn, ok := ret.Get(0).(func(context.Context) ([]model.Record, error)); ok {
		return fn(ctx)
	}

	var records []model.Record
	if v := ret.Get(0); v != nil {
		records = v.([]model.Record)
	}
	return records, ret.Error(1)
}

func (m *MockRecordStore) Save(ctx context.Context, records []model.Record) error {
	ret := m.Called(ctx, records)

	if fn, ok := ret.Get(0).(func(context.Context, []model.Record) error); ok {
		return fn(ctx, records)
	}
	return ret.Error(0)
}

package mocks

import (
	"context"

	"sseol-server/internal/cache"
	"sseol-server/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockDescriptorCache is a mock type for the DescriptorCache type
type MockDescriptorCache struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, key
func (_m *MockDescriptorCache) Get(ctx context.Context, key string) (domain.ImageDescriptor, error) {
	ret := _m.Called(ctx, key)

	var r0 domain.ImageDescriptor
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.ImageDescriptor)
	}
	return r0, ret.Error(1)
}

// Set provides a mock function with given fields: ctx, key, descriptor
func (_m *MockDescriptorCache) Set(ctx context.Context, key string, descriptor domain.ImageDescriptor) error {
	ret := _m.Called(ctx, key, descriptor)
	return ret.Error(0)
}

// NewMockDescriptorCache creates a new instance of MockDescriptorCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockDescriptorCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDescriptorCache {
	m := &MockDescriptorCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ cache.DescriptorCache = (*MockDescriptorCache)(nil)

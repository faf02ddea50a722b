package mocks

import (
	"context"

	"sseol-server/internal/describer"
	"sseol-server/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockImageDescriber is a mock type for the ImageDescriber type
type MockImageDescriber struct {
	mock.Mock
}

// Describe provides a mock function with given fields: ctx, img
func (_m *MockImageDescriber) Describe(ctx context.Context, img describer.Image) (domain.ImageDescriptor, error) {
	ret := _m.Called(ctx, img)

	var r0 domain.ImageDescriptor
	if rf, ok := ret.Get(0).(func(context.Context, describer.Image) domain.ImageDescriptor); ok {
		r0 = rf(ctx, img)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.ImageDescriptor)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, describer.Image) error); ok {
		r1 = rf(ctx, img)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockImageDescriber creates a new instance of MockImageDescriber. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockImageDescriber(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockImageDescriber {
	m := &MockImageDescriber{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ describer.ImageDescriber = (*MockImageDescriber)(nil)

package mocks

import (
	"context"

	"sseol-server/internal/oracle"

	"github.com/stretchr/testify/mock"
)

// MockPlacementOracle is a mock type for the PlacementOracle type
type MockPlacementOracle struct {
	mock.Mock
}

// Invoke provides a mock function with given fields: ctx, req
func (_m *MockPlacementOracle) Invoke(ctx context.Context, req oracle.Request) (*oracle.Result, error) {
	ret := _m.Called(ctx, req)

	var r0 *oracle.Result
	if rf, ok := ret.Get(0).(func(context.Context, oracle.Request) *oracle.Result); ok {
		r0 = rf(ctx, req)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*oracle.Result)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, oracle.Request) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Model provides a mock function with given fields:
func (_m *MockPlacementOracle) Model() string {
	ret := _m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.String(0)
	}
	return r0
}

// NewMockPlacementOracle creates a new instance of MockPlacementOracle. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockPlacementOracle(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPlacementOracle {
	m := &MockPlacementOracle{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ oracle.PlacementOracle = (*MockPlacementOracle)(nil)

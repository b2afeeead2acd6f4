package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

// MockSessionManager is a mock of the gateway's session surface.
type MockSessionManager struct {
	mock.Mock
}

// State returns the session state.
func (m *MockSessionManager) State() gateway.SessionState {
	args := m.Called()
	return args.Get(0).(gateway.SessionState)
}

// Login establishes a session.
func (m *MockSessionManager) Login(ctx context.Context, credentials interface{}) (*gateway.Response, error) {
	args := m.Called(ctx, credentials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Response), args.Error(1)
}

// Logout ends the session.
func (m *MockSessionManager) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// CheckSession reports whether a session exists.
func (m *MockSessionManager) CheckSession(ctx context.Context) (*gateway.SessionInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.SessionInfo), args.Error(1)
}

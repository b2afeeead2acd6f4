package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/admin-gateway/internal/core/vault"
)

var _ vault.Vault = (*MockVault)(nil)

// MockVault is a mock implementation of vault.Vault.
type MockVault struct {
	mock.Mock
}

// GetSecret retrieves a secret from the vault.
func (m *MockVault) GetSecret(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

// Ping checks if the vault connection is alive.
func (m *MockVault) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the vault connection.
func (m *MockVault) Close() error {
	args := m.Called()
	return args.Error(0)
}

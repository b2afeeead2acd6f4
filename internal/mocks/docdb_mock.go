package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/admin-gateway/internal/core/docdb"
	"github.com/unifiedui/admin-gateway/internal/domain/models"
)

var (
	_ docdb.Client            = (*MockDocDBClient)(nil)
	_ docdb.PresetsCollection = (*MockPresetsCollection)(nil)
)

// MockPresetsCollection is a mock implementation of docdb.PresetsCollection.
type MockPresetsCollection struct {
	mock.Mock
}

// Add inserts a preset.
func (m *MockPresetsCollection) Add(ctx context.Context, preset *models.FilterPreset) error {
	args := m.Called(ctx, preset)
	return args.Error(0)
}

// Get retrieves a preset.
func (m *MockPresetsCollection) Get(ctx context.Context, id string) (*models.FilterPreset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FilterPreset), args.Error(1)
}

// List lists presets.
func (m *MockPresetsCollection) List(ctx context.Context, opts *docdb.ListPresetsOptions) ([]*models.FilterPreset, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FilterPreset), args.Error(1)
}

// Delete removes a preset.
func (m *MockPresetsCollection) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// EnsureIndexes creates indexes.
func (m *MockPresetsCollection) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDocDBClient is a mock implementation of docdb.Client.
type MockDocDBClient struct {
	mock.Mock
	PresetsCollection *MockPresetsCollection
}

// NewMockDocDBClient creates a MockDocDBClient with an attached presets mock.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{PresetsCollection: &MockPresetsCollection{}}
}

// Presets returns the presets collection.
func (m *MockDocDBClient) Presets() docdb.PresetsCollection {
	return m.PresetsCollection
}

// Ping checks the connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// EnsureIndexes creates indexes.
func (m *MockDocDBClient) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/admin-gateway/internal/services/calllog"
	"github.com/unifiedui/admin-gateway/internal/services/filters"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

var _ calllog.Client = (*MockCallLogClient)(nil)

// MockCallLogClient is a mock implementation of calllog.Client.
type MockCallLogClient struct {
	mock.Mock
}

// ListCalls runs a list query.
func (m *MockCallLogClient) ListCalls(ctx context.Context, q filters.Query) (*filters.PageResult[calllog.Call], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filters.PageResult[calllog.Call]), args.Error(1)
}

// GetTranscript retrieves a transcript.
func (m *MockCallLogClient) GetTranscript(ctx context.Context, id string) (*calllog.Transcript, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calllog.Transcript), args.Error(1)
}

// ExportCalls downloads a CSV export.
func (m *MockCallLogClient) ExportCalls(ctx context.Context, applied filters.Set) (*gateway.Blob, error) {
	args := m.Called(ctx, applied)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Blob), args.Error(1)
}

// ListAgents lists agents.
func (m *MockCallLogClient) ListAgents(ctx context.Context) ([]calllog.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]calllog.Agent), args.Error(1)
}

// ListCampaigns lists campaigns.
func (m *MockCallLogClient) ListCampaigns(ctx context.Context) ([]calllog.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]calllog.Campaign), args.Error(1)
}

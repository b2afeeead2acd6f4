package calllog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/filters"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

const (
	callsPath     = "/calls"
	exportPath    = "/calls/export"
	agentsPath    = "/agents"
	campaignsPath = "/campaigns"
)

// Caller is the subset of the gateway used by the client.
type Caller interface {
	Call(ctx context.Context, endpoint string, opts *gateway.Options) (*gateway.Response, error)
	CallBlob(ctx context.Context, endpoint string, opts *gateway.Options) (*gateway.Blob, error)
}

// Client defines the call-log data access operations.
type Client interface {
	// ListCalls runs one server query for the call-log list.
	ListCalls(ctx context.Context, q filters.Query) (*filters.PageResult[Call], error)

	// GetTranscript retrieves the transcript of a call.
	GetTranscript(ctx context.Context, id string) (*Transcript, error)

	// ExportCalls downloads the calls matching the server-evaluable filters as CSV.
	ExportCalls(ctx context.Context, applied filters.Set) (*gateway.Blob, error)

	// ListAgents lists calling agents.
	ListAgents(ctx context.Context) ([]Agent, error)

	// ListCampaigns lists campaigns.
	ListCampaigns(ctx context.Context) ([]Campaign, error)
}

// client implements the Client interface.
type client struct {
	caller Caller
}

// NewClient creates a new call-log client.
func NewClient(caller Caller) (Client, error) {
	if caller == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	return &client{caller: caller}, nil
}

// ListCalls runs one server query on the dashboard root.
func (c *client) ListCalls(ctx context.Context, q filters.Query) (*filters.PageResult[Call], error) {
	resp, err := c.caller.Call(ctx, callsPath, &gateway.Options{
		Method: http.MethodGet,
		Query:  q.Values(),
		Base:   gateway.BaseDashboard,
	})
	if err != nil {
		return nil, err
	}

	page, err := gateway.NormalizeListing(resp.Body, q.PageSize)
	if err != nil {
		return nil, err
	}
	items, err := gateway.DecodeItems[Call](page)
	if err != nil {
		return nil, err
	}

	return &filters.PageResult[Call]{
		Items:    items,
		Total:    page.Total,
		PageSize: page.PageSize,
	}, nil
}

// GetTranscript retrieves the transcript of a call.
func (c *client) GetTranscript(ctx context.Context, id string) (*Transcript, error) {
	if id == "" {
		return nil, errors.NewValidationError("call id is required", "")
	}

	resp, err := c.caller.Call(ctx, callsPath+"/"+url.PathEscape(id)+"/transcript", &gateway.Options{
		Base: gateway.BaseDashboard,
	})
	if err != nil {
		return nil, err
	}
	if resp.IsNull() {
		return nil, errors.NewNotFoundError("transcript", id)
	}

	var transcript Transcript
	if err := resp.Decode(&transcript); err != nil {
		return nil, err
	}
	if transcript.CallID == "" {
		transcript.CallID = id
	}
	return &transcript, nil
}

// ExportCalls downloads a CSV of the calls matching the applied server filters.
func (c *client) ExportCalls(ctx context.Context, applied filters.Set) (*gateway.Blob, error) {
	q := url.Values{}
	for _, e := range applied.Server().Active() {
		q.Set(string(e.Key), e.Value)
	}
	q.Set("format", "csv")

	blob, err := c.caller.CallBlob(ctx, exportPath, &gateway.Options{
		Query: q,
		Base:  gateway.BaseDashboard,
	})
	if err != nil {
		return nil, err
	}
	if blob.Filename == "" {
		blob.Filename = "calls.csv"
	}
	return blob, nil
}

// ListAgents lists calling agents on the admin root.
func (c *client) ListAgents(ctx context.Context) ([]Agent, error) {
	return listAll[Agent](ctx, c.caller, agentsPath)
}

// ListCampaigns lists campaigns on the admin root.
func (c *client) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	return listAll[Campaign](ctx, c.caller, campaignsPath)
}

func listAll[T any](ctx context.Context, caller Caller, path string) ([]T, error) {
	resp, err := caller.Call(ctx, path, &gateway.Options{Base: gateway.BaseAdmin})
	if err != nil {
		return nil, err
	}
	page, err := gateway.NormalizeListing(resp.Body, 0)
	if err != nil {
		return nil, err
	}
	return gateway.DecodeItems[T](page)
}

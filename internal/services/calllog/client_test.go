package calllog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/calllog"
	"github.com/unifiedui/admin-gateway/internal/services/filters"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

// stubCaller records the last call and answers with a fixed response.
type stubCaller struct {
	endpoint string
	opts     *gateway.Options
	resp     *gateway.Response
	blob     *gateway.Blob
	err      error
}

func (s *stubCaller) Call(_ context.Context, endpoint string, opts *gateway.Options) (*gateway.Response, error) {
	s.endpoint, s.opts = endpoint, opts
	return s.resp, s.err
}

func (s *stubCaller) CallBlob(_ context.Context, endpoint string, opts *gateway.Options) (*gateway.Blob, error) {
	s.endpoint, s.opts = endpoint, opts
	return s.blob, s.err
}

func jsonResponse(body string) *gateway.Response {
	return &gateway.Response{StatusCode: http.StatusOK, Body: json.RawMessage(body)}
}

func newClient(t *testing.T, caller calllog.Caller) calllog.Client {
	t.Helper()
	c, err := calllog.NewClient(caller)
	require.NoError(t, err)
	return c
}

func TestNewClient_NilCaller(t *testing.T) {
	_, err := calllog.NewClient(nil)
	assert.Error(t, err)
}

func TestListCalls(t *testing.T) {
	// Arrange
	caller := &stubCaller{resp: jsonResponse(`{"data":[{"id":"c1","phone":"555","durationSec":42,"status":"failed"}],"pagination":{"total":95}}`)}
	client := newClient(t, caller)
	q := filters.Query{
		Filters:  filters.NewSet().With(filters.KeyStatus, "failed"),
		Page:     2,
		PageSize: 50,
	}

	// Act
	page, err := client.ListCalls(context.Background(), q)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/calls", caller.endpoint)
	assert.Equal(t, gateway.BaseDashboard, caller.opts.Base)
	assert.Equal(t, "failed", caller.opts.Query.Get("status"))
	assert.Equal(t, "2", caller.opts.Query.Get("page"))
	require.Len(t, page.Items, 1)
	assert.Equal(t, calllog.CallStatusFailed, page.Items[0].Status)
	assert.Equal(t, 42.0, page.Items[0].DurationSec)
	assert.Equal(t, 95, page.Total)
	assert.Equal(t, 2, page.TotalPages())
}

func TestListCalls_NullBodyIsEmptyPage(t *testing.T) {
	client := newClient(t, &stubCaller{resp: &gateway.Response{StatusCode: http.StatusNoContent}})

	page, err := client.ListCalls(context.Background(), filters.Query{Page: 1, PageSize: 50})

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages())
}

func TestListCalls_PropagatesErrors(t *testing.T) {
	client := newClient(t, &stubCaller{err: errors.NewSessionExpiredError(errors.SessionReasonLoggedOut, nil)})

	_, err := client.ListCalls(context.Background(), filters.Query{Page: 1, PageSize: 50})

	assert.True(t, errors.IsSessionExpired(err))
}

func TestGetTranscript(t *testing.T) {
	caller := &stubCaller{resp: jsonResponse(`{"turns":[{"speaker":"agent","text":"Hello","offsetSec":0.5}]}`)}
	client := newClient(t, caller)

	transcript, err := client.GetTranscript(context.Background(), "conv/1")

	require.NoError(t, err)
	assert.Equal(t, "/calls/conv%2F1/transcript", caller.endpoint)
	assert.Equal(t, "conv/1", transcript.CallID)
	require.Len(t, transcript.Turns, 1)
	assert.Equal(t, calllog.SpeakerAgent, transcript.Turns[0].Speaker)
}

func TestGetTranscript_NullIsNotFound(t *testing.T) {
	client := newClient(t, &stubCaller{resp: &gateway.Response{StatusCode: http.StatusOK}})

	_, err := client.GetTranscript(context.Background(), "c1")

	assert.True(t, errors.IsNotFound(err))
}

func TestGetTranscript_EmptyID(t *testing.T) {
	client := newClient(t, &stubCaller{})

	_, err := client.GetTranscript(context.Background(), "")

	assert.True(t, errors.IsValidationError(err))
}

func TestExportCalls(t *testing.T) {
	caller := &stubCaller{blob: &gateway.Blob{ContentType: "text/csv", Data: []byte("id\n")}}
	client := newClient(t, caller)
	applied := filters.NewSet().
		With(filters.KeyStatus, "busy").
		With(filters.KeySearch, "refund").
		With(filters.KeyMinDuration, "30")

	blob, err := client.ExportCalls(context.Background(), applied)

	require.NoError(t, err)
	assert.Equal(t, "calls.csv", blob.Filename)
	assert.Equal(t, "/calls/export", caller.endpoint)
	assert.Equal(t, "busy", caller.opts.Query.Get("status"))
	assert.Equal(t, "csv", caller.opts.Query.Get("format"))
	assert.Empty(t, caller.opts.Query.Get("search"))
	assert.Empty(t, caller.opts.Query.Get("minDuration"))
}

func TestListAgentsAndCampaigns_ThroughGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/admin/agents":
			_, _ = w.Write([]byte(`[{"id":"a1","name":"Ava","active":true}]`))
		case "/admin/campaigns":
			_, _ = w.Write([]byte(`{"items":[{"id":"k1","name":"Renewals","status":"running"}],"total":1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	gw, err := gateway.New(&gateway.Config{AdminURL: srv.URL + "/admin", DashboardURL: srv.URL + "/dashboard"})
	require.NoError(t, err)
	client := newClient(t, gw)

	agents, err := client.ListAgents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []calllog.Agent{{ID: "a1", Name: "Ava", Active: true}}, agents)

	campaigns, err := client.ListCampaigns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []calllog.Campaign{{ID: "k1", Name: "Renewals", Status: "running"}}, campaigns)
}

package gateway_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
)

func TestNormalizeListing(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		requested int
		items     int
		total     int
		pageSize  int
		pages     int
	}{
		{"items envelope", `{"items":[{"id":1},{"id":2}],"total":95}`, 50, 2, 95, 50, 2},
		{"data with pagination", `{"data":[{"id":1}],"pagination":{"total":120,"pages":3,"limit":40}}`, 50, 1, 120, 40, 3},
		{"pagination total only", `{"data":[],"pagination":{"total":0}}`, 50, 0, 0, 50, 1},
		{"top-level page size", `{"items":[{"id":1}],"total":30,"pageSize":10}`, 50, 1, 30, 10, 3},
		{"bare array", `[{"id":1},{"id":2},{"id":3}]`, 0, 3, 3, 3, 1},
		{"null", `null`, 50, 0, 0, 50, 1},
		{"empty", ``, 0, 0, 0, 1, 1},
		{"null items", `{"items":null,"total":0}`, 25, 0, 0, 25, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := gateway.NormalizeListing(json.RawMessage(tt.raw), tt.requested)

			require.NoError(t, err)
			assert.Len(t, page.Items, tt.items)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.pageSize, page.PageSize)
			assert.Equal(t, tt.pages, page.Pages)
		})
	}
}

func TestNormalizeListing_Malformed(t *testing.T) {
	for _, raw := range []string{`{"total":3}`, `{"items":{"id":1}}`, `[1,`} {
		_, err := gateway.NormalizeListing(json.RawMessage(raw), 50)
		assert.True(t, errors.IsDecodeError(err), raw)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, gateway.TotalPages(0, 50))
	assert.Equal(t, 1, gateway.TotalPages(50, 50))
	assert.Equal(t, 2, gateway.TotalPages(51, 50))
	assert.Equal(t, 2, gateway.TotalPages(95, 50))
	assert.Equal(t, 1, gateway.TotalPages(10, 0))
}

func TestDecodeItems(t *testing.T) {
	page, err := gateway.NormalizeListing(json.RawMessage(`[{"id":"a"},{"id":"b"}]`), 0)
	require.NoError(t, err)

	items, err := gateway.DecodeItems[struct {
		ID string `json:"id"`
	}](page)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[1].ID)

	bad, err := gateway.NormalizeListing(json.RawMessage(`[1]`), 0)
	require.NoError(t, err)
	_, err = gateway.DecodeItems[struct{ ID string }](bad)
	assert.True(t, errors.IsDecodeError(err))
}

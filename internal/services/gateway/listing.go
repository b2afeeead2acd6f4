package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
)

// ListPage is the canonical shape of a listing response, whichever of the
// upstream shapes produced it.
type ListPage struct {
	Items    []json.RawMessage
	Total    int
	PageSize int
	Pages    int
}

type listEnvelope struct {
	Items      json.RawMessage `json:"items"`
	Data       json.RawMessage `json:"data"`
	Total      *int            `json:"total"`
	PageSize   *int            `json:"pageSize"`
	Limit      *int            `json:"limit"`
	Pagination *struct {
		Total    *int `json:"total"`
		Pages    *int `json:"pages"`
		PageSize *int `json:"pageSize"`
		Limit    *int `json:"limit"`
	} `json:"pagination"`
}

// NormalizeListing accepts {items,total}, {data,pagination:{total,pages}} or
// a bare array and returns the canonical page. requestedPageSize is used
// when the payload does not state its own page size.
func NormalizeListing(raw json.RawMessage, requestedPageSize int) (*ListPage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return finalize(&ListPage{Items: []json.RawMessage{}}, requestedPageSize), nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, errors.NewDecodeError(0, err)
		}
		return finalize(&ListPage{Items: items, Total: len(items)}, requestedPageSize), nil
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, errors.NewDecodeError(0, err)
	}

	itemsRaw := env.Items
	if len(itemsRaw) == 0 {
		itemsRaw = env.Data
	}
	if len(itemsRaw) == 0 {
		return nil, errors.NewDecodeError(0, fmt.Errorf("listing has neither items nor data"))
	}

	var items []json.RawMessage
	if !bytes.Equal(bytes.TrimSpace(itemsRaw), []byte("null")) {
		if err := json.Unmarshal(itemsRaw, &items); err != nil {
			return nil, errors.NewDecodeError(0, err)
		}
	}
	if items == nil {
		items = []json.RawMessage{}
	}

	page := &ListPage{Items: items, Total: len(items)}
	switch {
	case env.Total != nil:
		page.Total = *env.Total
	case env.Pagination != nil && env.Pagination.Total != nil:
		page.Total = *env.Pagination.Total
	}

	if p := env.Pagination; p != nil {
		page.PageSize = firstPositive(p.PageSize, p.Limit)
		if p.Pages != nil && *p.Pages > 0 {
			page.Pages = *p.Pages
		}
	}
	if page.PageSize == 0 {
		page.PageSize = firstPositive(env.PageSize, env.Limit)
	}

	return finalize(page, requestedPageSize), nil
}

func finalize(page *ListPage, requestedPageSize int) *ListPage {
	if page.PageSize <= 0 {
		page.PageSize = requestedPageSize
	}
	if page.PageSize <= 0 {
		page.PageSize = len(page.Items)
	}
	if page.PageSize <= 0 {
		page.PageSize = 1
	}
	if page.Pages <= 0 {
		page.Pages = TotalPages(page.Total, page.PageSize)
	}
	return page
}

// TotalPages returns max(1, ceil(total/pageSize)).
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// DecodeItems unmarshals the items of a page into T.
func DecodeItems[T any](page *ListPage) ([]T, error) {
	out := make([]T, 0, len(page.Items))
	for _, raw := range page.Items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, errors.NewDecodeError(0, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func firstPositive(values ...*int) int {
	for _, v := range values {
		if v != nil && *v > 0 {
			return *v
		}
	}
	return 0
}

package dto

import (
	"time"

	"github.com/unifiedui/admin-gateway/internal/domain/models"
	"github.com/unifiedui/admin-gateway/internal/services/calllog"
	"github.com/unifiedui/admin-gateway/internal/services/filters"
	"github.com/unifiedui/admin-gateway/internal/services/views"
)

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// SessionResponse describes the upstream session.
type SessionResponse struct {
	State         string      `json:"state"`
	Authenticated bool        `json:"authenticated"`
	User          interface{} `json:"user,omitempty"`
}

// ErrorInfo is an operation error embedded in a successful snapshot.
type ErrorInfo struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	Reason         string `json:"reason,omitempty"`
	UpstreamStatus int    `json:"upstreamStatus,omitempty"`
}

// ListResponse is the list part of a view snapshot.
type ListResponse struct {
	Staged     map[string]string `json:"staged"`
	Applied    map[string]string `json:"applied"`
	Gates      filters.Gates     `json:"gates"`
	Chips      []filters.Entry   `json:"chips"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Total      int               `json:"total"`
	State      string            `json:"state"`
	Error      *ErrorInfo        `json:"error,omitempty"`
	Items      []calllog.Call    `json:"items"`
}

// SelectionResponse is the selection part of a view snapshot.
type SelectionResponse struct {
	ID      string              `json:"id,omitempty"`
	Record  *calllog.Call       `json:"record,omitempty"`
	Detail  *calllog.Transcript `json:"detail,omitempty"`
	Loading bool                `json:"loading"`
	Error   *ErrorInfo          `json:"error,omitempty"`
}

// ViewResponse is a snapshot of one list view.
type ViewResponse struct {
	ID        string            `json:"id"`
	List      ListResponse      `json:"list"`
	Selection SelectionResponse `json:"selection"`
}

// GatesResponse is returned after editing the staged filters.
type GatesResponse struct {
	Staged map[string]string `json:"staged"`
	Gates  filters.Gates     `json:"gates"`
}

// PresetResponse represents a filter preset.
type PresetResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	View      string            `json:"view"`
	Filters   map[string]string `json:"filters"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ListPresetsResponse represents a list of filter presets.
type ListPresetsResponse struct {
	Presets []*PresetResponse `json:"presets"`
	Total   int               `json:"total"`
}

// LoadPresetResponse is returned after loading a preset into a view.
type LoadPresetResponse struct {
	Preset *PresetResponse    `json:"preset"`
	Staged map[string]string `json:"staged"`
	Gates  filters.Gates     `json:"gates"`
}

// NewViewResponse converts a view snapshot.
func NewViewResponse(s views.Snapshot) *ViewResponse {
	list := ListResponse{
		Staged:     s.List.Staged.Map(),
		Applied:    s.List.Applied.Map(),
		Gates:      s.List.Gates,
		Chips:      s.List.Chips,
		Page:       s.List.Page,
		TotalPages: s.List.TotalPages,
		State:      string(s.List.State),
		Error:      NewErrorInfo(s.List.Err),
		Items:      s.List.Visible,
	}
	if s.List.Result != nil {
		list.Total = s.List.Result.Total
	}
	if list.Chips == nil {
		list.Chips = []filters.Entry{}
	}
	if list.Items == nil {
		list.Items = []calllog.Call{}
	}

	return &ViewResponse{
		ID:   s.ID,
		List: list,
		Selection: SelectionResponse{
			ID:      s.Selection.ID,
			Record:  s.Selection.Record,
			Detail:  s.Selection.Detail,
			Loading: s.Selection.Loading,
			Error:   NewErrorInfo(s.Selection.Err),
		},
	}
}

// NewPresetResponse converts a preset model.
func NewPresetResponse(p *models.FilterPreset) *PresetResponse {
	if p == nil {
		return nil
	}
	return &PresetResponse{
		ID:        p.ID,
		Name:      p.Name,
		View:      p.View,
		Filters:   p.Filters,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Package models contains the persisted models of the admin gateway.
package models

import "time"

// ViewState is the persisted state of one list view: its applied filters
// and current page. Staged edits are never persisted.
type ViewState struct {
	ViewID    string            `json:"viewId"`
	Applied   map[string]string `json:"applied"`
	Page      int               `json:"page"`
	SavedAt   time.Time         `json:"savedAt"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// NewViewState creates a view state that expires after ttl.
func NewViewState(viewID string, applied map[string]string, page int, ttl time.Duration) *ViewState {
	now := time.Now().UTC()
	if page < 1 {
		page = 1
	}
	return &ViewState{
		ViewID:    viewID,
		Applied:   applied,
		Page:      page,
		SavedAt:   now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired checks if the view state has expired.
func (s *ViewState) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}

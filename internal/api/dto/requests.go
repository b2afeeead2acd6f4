// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// LoginRequest represents the credentials forwarded to the upstream login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StageFilterRequest sets one staged filter. An empty value clears it.
type StageFilterRequest struct {
	Value string `json:"value"`
}

// SetPageRequest moves a view to another page.
type SetPageRequest struct {
	Page int `json:"page" binding:"required"`
}

// SelectRequest selects a record of the current page.
type SelectRequest struct {
	ID string `json:"id" binding:"required"`
}

// CreatePresetRequest saves a filter preset. When Filters is empty the
// applied filters of ViewID are saved.
type CreatePresetRequest struct {
	Name    string            `json:"name" binding:"required,max=100"`
	ViewID  string            `json:"viewId,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

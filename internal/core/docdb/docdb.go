// Package docdb defines the document database interfaces.
package docdb

import (
	"context"
	"errors"

	"github.com/unifiedui/admin-gateway/internal/domain/models"
)

// Type represents the type of document database.
type Type string

const (
	// TypeMongoDB represents a MongoDB database.
	TypeMongoDB Type = "mongodb"
)

// ErrDuplicate is returned when a write collides with a unique index.
var ErrDuplicate = errors.New("document already exists")

// SortOrder represents the sort direction.
type SortOrder string

const (
	// SortOrderAsc represents ascending order.
	SortOrderAsc SortOrder = "asc"
	// SortOrderDesc represents descending order.
	SortOrderDesc SortOrder = "desc"
)

// ListPresetsOptions contains options for listing presets.
type ListPresetsOptions struct {
	View    string
	Limit   int64
	Skip    int64
	OrderBy SortOrder // Order by name
}

// PresetsCollection defines the filter preset storage operations.
type PresetsCollection interface {
	// Add inserts a new preset. It returns ErrDuplicate when the view
	// already has a preset with the same name.
	Add(ctx context.Context, preset *models.FilterPreset) error

	// Get retrieves a preset by ID. It returns nil, nil when absent.
	Get(ctx context.Context, id string) (*models.FilterPreset, error)

	// List lists presets with pagination and sorting.
	List(ctx context.Context, opts *ListPresetsOptions) ([]*models.FilterPreset, error)

	// Delete removes a preset and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}

// Client defines the interface for a document database client.
type Client interface {
	// Presets returns the filter presets collection.
	Presets() PresetsCollection

	// Ping verifies the database connection.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error

	// EnsureIndexes creates the indexes of every collection.
	EnsureIndexes(ctx context.Context) error
}

package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unifiedui/admin-gateway/internal/core/docdb"
	"github.com/unifiedui/admin-gateway/internal/domain/models"
)

// PresetsCollectionName is the name of the filter presets collection.
const PresetsCollectionName = "filter_presets"

// PresetsCollection implements the docdb.PresetsCollection interface for MongoDB.
type PresetsCollection struct {
	presets *mongo.Collection
}

var _ docdb.PresetsCollection = (*PresetsCollection)(nil)

// NewPresetsCollection creates a new presets collection wrapper.
func NewPresetsCollection(db *mongo.Database) *PresetsCollection {
	return &PresetsCollection{presets: db.Collection(PresetsCollectionName)}
}

// Add inserts a new preset.
func (c *PresetsCollection) Add(ctx context.Context, preset *models.FilterPreset) error {
	if preset.ID == "" {
		return fmt.Errorf("preset ID is required")
	}

	preset.CreatedAt = time.Now().UTC()
	preset.UpdatedAt = preset.CreatedAt

	if _, err := c.presets.InsertOne(ctx, preset); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("preset %q: %w", preset.Name, docdb.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert preset: %w", err)
	}
	return nil
}

// Get retrieves a preset by ID.
func (c *PresetsCollection) Get(ctx context.Context, id string) (*models.FilterPreset, error) {
	var preset models.FilterPreset
	err := c.presets.FindOne(ctx, bson.M{"_id": id}).Decode(&preset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}
	return &preset, nil
}

// List lists presets of a view with pagination and sorting.
func (c *PresetsCollection) List(ctx context.Context, opts *docdb.ListPresetsOptions) ([]*models.FilterPreset, error) {
	if opts == nil {
		opts = &docdb.ListPresetsOptions{}
	}

	filter := bson.M{}
	if opts.View != "" {
		filter["view"] = opts.View
	}

	order := 1
	if opts.OrderBy == docdb.SortOrderDesc {
		order = -1
	}
	findOpts := options.Find().SetSort(bson.D{{Key: "name", Value: order}})
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}

	cursor, err := c.presets.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer cursor.Close(ctx)

	presets := []*models.FilterPreset{}
	if err := cursor.All(ctx, &presets); err != nil {
		return nil, fmt.Errorf("failed to decode presets: %w", err)
	}
	return presets, nil
}

// Delete removes a preset by ID.
func (c *PresetsCollection) Delete(ctx context.Context, id string) (bool, error) {
	result, err := c.presets.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete preset: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// EnsureIndexes creates necessary indexes for the presets collection.
func (c *PresetsCollection) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "view", Value: 1},
				{Key: "name", Value: 1},
			},
			Options: options.Index().SetName("idx_view_name").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}

	if _, err := c.presets.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create presets indexes: %w", err)
	}
	return nil
}

// Package presets manages named filter sets saved for list views.
package presets

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/unifiedui/admin-gateway/internal/core/docdb"
	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/domain/models"
	"github.com/unifiedui/admin-gateway/internal/services/filters"
)

// ViewCalls is the view kind of the call-log list.
const ViewCalls = "calls"

// Stager receives a loaded preset. Presets only ever fill the staged set.
type Stager interface {
	StageSet(s filters.Set) filters.Gates
}

// Service provides filter preset operations.
type Service interface {
	// Save stores set under name for the given view kind.
	Save(ctx context.Context, view, name string, set filters.Set) (*models.FilterPreset, error)

	// List lists the presets of a view kind ordered by name.
	List(ctx context.Context, view string) ([]*models.FilterPreset, error)

	// Get retrieves a preset.
	Get(ctx context.Context, id string) (*models.FilterPreset, error)

	// Delete removes a preset.
	Delete(ctx context.Context, id string) error

	// Load stages the preset's filters into target and returns the
	// resulting gates.
	Load(ctx context.Context, id string, target Stager) (*models.FilterPreset, filters.Gates, error)
}

type service struct {
	collection docdb.PresetsCollection
}

// NewService creates a new preset service.
func NewService(collection docdb.PresetsCollection) (Service, error) {
	if collection == nil {
		return nil, fmt.Errorf("presets collection is required")
	}
	return &service{collection: collection}, nil
}

func (s *service) Save(ctx context.Context, view, name string, set filters.Set) (*models.FilterPreset, error) {
	if set.IsEmpty() {
		return nil, errors.NewValidationError("preset has no filters", "")
	}
	if _, err := filters.Promote(set); err != nil {
		return nil, err
	}

	preset := &models.FilterPreset{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(name),
		View:    view,
		Filters: set.Map(),
	}
	if err := preset.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error(), "")
	}

	if err := s.collection.Add(ctx, preset); err != nil {
		if stderrors.Is(err, docdb.ErrDuplicate) {
			return nil, errors.NewConflictError("a preset with this name already exists", preset.Name)
		}
		return nil, errors.NewInternalError("failed to save preset", err)
	}

	log.Info().Str("preset_id", preset.ID).Str("view", view).Msg("filter preset saved")
	return preset, nil
}

func (s *service) List(ctx context.Context, view string) ([]*models.FilterPreset, error) {
	presets, err := s.collection.List(ctx, &docdb.ListPresetsOptions{
		View:    view,
		OrderBy: docdb.SortOrderAsc,
	})
	if err != nil {
		return nil, errors.NewInternalError("failed to list presets", err)
	}
	return presets, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.FilterPreset, error) {
	preset, err := s.collection.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get preset", err)
	}
	if preset == nil {
		return nil, errors.NewNotFoundError("preset", id)
	}
	return preset, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	deleted, err := s.collection.Delete(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to delete preset", err)
	}
	if !deleted {
		return errors.NewNotFoundError("preset", id)
	}
	return nil
}

func (s *service) Load(ctx context.Context, id string, target Stager) (*models.FilterPreset, filters.Gates, error) {
	preset, err := s.Get(ctx, id)
	if err != nil {
		return nil, filters.Gates{}, err
	}
	return preset, target.StageSet(filters.FromMap(preset.Filters)), nil
}

package views

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unifiedui/admin-gateway/internal/domain/errors"
	"github.com/unifiedui/admin-gateway/internal/services/calllog"
)

var viewIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// RegistryConfig holds the configuration for the view registry.
type RegistryConfig struct {
	Client   calllog.Client
	Store    Store
	PageSize int
	Logger   *zerolog.Logger
}

// Registry owns the open call-log views.
type Registry struct {
	client   calllog.Client
	store    Store
	pageSize int
	logger   zerolog.Logger

	mu    sync.Mutex
	views map[string]*CallsView
}

// NewRegistry creates a new view registry.
func NewRegistry(cfg *RegistryConfig) (*Registry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("call-log client is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("view store is required")
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Registry{
		client:   cfg.Client,
		store:    cfg.Store,
		pageSize: cfg.PageSize,
		logger:   logger.With().Str("component", "views").Logger(),
		views:    make(map[string]*CallsView),
	}, nil
}

// Open returns the view with the given id, creating it on first use. A new
// view restores its persisted filters and page and loads them. A failed
// initial load is recorded in the view's state, not returned.
func (r *Registry) Open(ctx context.Context, viewID string) (*CallsView, error) {
	if !viewIDPattern.MatchString(viewID) {
		return nil, errors.NewBadRequestError("invalid view id", viewID)
	}

	if v, ok := r.Get(viewID); ok {
		return v, nil
	}

	v, err := newCallsView(viewID, r.client, r.store, r.pageSize, r.logger)
	if err != nil {
		return nil, errors.NewInternalError("failed to create view", err)
	}
	// Restore before publishing so no caller can act on the view first.
	v.restore(ctx)

	r.mu.Lock()
	if existing, ok := r.views[viewID]; ok {
		r.mu.Unlock()
		return existing, nil
	}
	r.views[viewID] = v
	r.mu.Unlock()

	_ = v.Reload(ctx)
	return v, nil
}

// Get returns an open view.
func (r *Registry) Get(viewID string) (*CallsView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[viewID]
	return v, ok
}

// Drop closes a view and deletes its persisted state.
func (r *Registry) Drop(ctx context.Context, viewID string) error {
	r.mu.Lock()
	v, ok := r.views[viewID]
	delete(r.views, viewID)
	r.mu.Unlock()

	if ok {
		v.close()
	}
	return r.store.Delete(ctx, viewID)
}

// Reset closes every view and deletes all persisted state. It runs when the
// upstream session ends.
func (r *Registry) Reset(ctx context.Context) error {
	r.mu.Lock()
	closed := r.views
	r.views = make(map[string]*CallsView)
	r.mu.Unlock()

	for _, v := range closed {
		v.close()
	}

	n, err := r.store.DeleteAll(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to delete persisted view state")
		return err
	}
	r.logger.Info().Int("views", len(closed)).Int64("persisted", n).Msg("view registry reset")
	return nil
}

// Len returns the number of open views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Package views keeps the list views opened through the gateway: one filter
// pipeline and one selection per view, with the applied filters and page
// persisted in the cache.
package views

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/unifiedui/admin-gateway/internal/core/cache"
	"github.com/unifiedui/admin-gateway/internal/domain/models"
	"github.com/unifiedui/admin-gateway/internal/pkg/encryption"
)

// DefaultStateTTL is the default TTL of persisted view state.
const DefaultStateTTL = 30 * time.Minute

const keyPrefix = "view:"

// Store persists view state.
type Store interface {
	// Get retrieves the state of a view, or returns nil if not found.
	Get(ctx context.Context, viewID string) (*models.ViewState, error)

	// Set stores the state of a view with the configured TTL.
	Set(ctx context.Context, viewID string, applied map[string]string, page int) error

	// Delete removes the state of a view.
	Delete(ctx context.Context, viewID string) error

	// DeleteAll removes the state of every view.
	DeleteAll(ctx context.Context) (int64, error)

	// BuildCacheKey generates the cache key for a view.
	BuildCacheKey(viewID string) string
}

type store struct {
	cacheClient cache.Client
	encryptor   encryption.Encryptor
	ttl         time.Duration
}

// NewStore creates a cache-backed view state store. Applied filters can
// carry phone numbers, so entries are sealed with encryptor; nil means
// no encryption.
func NewStore(cacheClient cache.Client, encryptor encryption.Encryptor, ttl time.Duration) (Store, error) {
	if cacheClient == nil {
		return nil, fmt.Errorf("cache client is required")
	}
	if encryptor == nil {
		encryptor = encryption.NewNoOpEncryptor()
	}
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &store{cacheClient: cacheClient, encryptor: encryptor, ttl: ttl}, nil
}

// Get retrieves the state of a view. Corrupt or expired entries are
// deleted and reported as absent.
func (s *store) Get(ctx context.Context, viewID string) (*models.ViewState, error) {
	key := s.BuildCacheKey(viewID)

	data, err := s.cacheClient.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get view state from cache: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var state models.ViewState
	plain, err := s.encryptor.Open(data)
	if err != nil || json.Unmarshal(plain, &state) != nil || state.IsExpired() {
		_, _ = s.cacheClient.Delete(ctx, key)
		return nil, nil
	}
	return &state, nil
}

// Set stores the state of a view.
func (s *store) Set(ctx context.Context, viewID string, applied map[string]string, page int) error {
	data, err := json.Marshal(models.NewViewState(viewID, applied, page, s.ttl))
	if err != nil {
		return fmt.Errorf("failed to marshal view state: %w", err)
	}
	sealed, err := s.encryptor.Seal(data)
	if err != nil {
		return fmt.Errorf("failed to encrypt view state: %w", err)
	}
	if err := s.cacheClient.Set(ctx, s.BuildCacheKey(viewID), sealed, s.ttl); err != nil {
		return fmt.Errorf("failed to store view state in cache: %w", err)
	}
	return nil
}

// Delete removes the state of a view.
func (s *store) Delete(ctx context.Context, viewID string) error {
	if _, err := s.cacheClient.Delete(ctx, s.BuildCacheKey(viewID)); err != nil {
		return fmt.Errorf("failed to delete view state: %w", err)
	}
	return nil
}

// DeleteAll removes the state of every view.
func (s *store) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.cacheClient.DeletePattern(ctx, keyPrefix+"*")
	if err != nil {
		return n, fmt.Errorf("failed to delete view states: %w", err)
	}
	return n, nil
}

// BuildCacheKey generates the cache key for a view.
func (s *store) BuildCacheKey(viewID string) string {
	return keyPrefix + viewID
}

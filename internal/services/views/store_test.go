package views_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/admin-gateway/internal/domain/models"
	rediscache "github.com/unifiedui/admin-gateway/internal/infrastructure/cache/redis"
	"github.com/unifiedui/admin-gateway/internal/mocks"
	"github.com/unifiedui/admin-gateway/internal/pkg/encryption"
	"github.com/unifiedui/admin-gateway/internal/services/views"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, views.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client, err := rediscache.NewClient(rediscache.Config{Host: mr.Host(), Port: mr.Port(), KeyPrefix: "gw:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	store, err := views.NewStore(client, nil, ttl)
	require.NoError(t, err)
	return mr, store
}

func TestNewStore_NilCache(t *testing.T) {
	store, err := views.NewStore(nil, nil, time.Minute)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestStore_SetAndGet(t *testing.T) {
	mr, store := newRedisStore(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "calls-main", map[string]string{"status": "failed"}, 3))

	state, err := store.Get(ctx, "calls-main")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "calls-main", state.ViewID)
	assert.Equal(t, map[string]string{"status": "failed"}, state.Applied)
	assert.Equal(t, 3, state.Page)
	assert.Equal(t, 5*time.Minute, mr.TTL("gw:view:calls-main"))
}

func TestStore_GetMissing(t *testing.T) {
	_, store := newRedisStore(t, time.Minute)

	state, err := store.Get(context.Background(), "nope")

	assert.NoError(t, err)
	assert.Nil(t, state)
}

func TestStore_CorruptEntryIsDropped(t *testing.T) {
	mr, store := newRedisStore(t, time.Minute)
	require.NoError(t, mr.Set("gw:view:broken", "{not json"))

	state, err := store.Get(context.Background(), "broken")

	assert.NoError(t, err)
	assert.Nil(t, state)
	assert.False(t, mr.Exists("gw:view:broken"))
}

func TestStore_ExpiredEntryIsDropped(t *testing.T) {
	// Arrange
	cache := &mocks.MockCacheClient{}
	store, err := views.NewStore(cache, nil, time.Minute)
	require.NoError(t, err)
	expired := models.ViewState{ViewID: "old", Page: 2, ExpiresAt: time.Now().Add(-time.Minute)}
	data, _ := json.Marshal(expired)
	sealed, _ := encryption.NewNoOpEncryptor().Seal(data)
	cache.On("Get", mock.Anything, "view:old").Return(sealed, nil)
	cache.On("Delete", mock.Anything, "view:old").Return(true, nil)

	// Act
	state, err := store.Get(context.Background(), "old")

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, state)
	cache.AssertExpectations(t)
}

func TestStore_DeleteAll(t *testing.T) {
	mr, store := newRedisStore(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "a", nil, 1))
	require.NoError(t, store.Set(ctx, "b", nil, 1))
	require.NoError(t, mr.Set("gw:other", "keep"))

	n, err := store.DeleteAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.True(t, mr.Exists("gw:other"))
}

func TestStore_EncryptsAppliedFilters(t *testing.T) {
	// Arrange
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client, err := rediscache.NewClient(rediscache.Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	defer client.Close()
	enc, err := encryption.NewAESEncryptor("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	store, err := views.NewStore(client, enc, time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	// Act
	require.NoError(t, store.Set(ctx, "calls", map[string]string{"phone": "+15550100"}, 1))
	state, err := store.Get(ctx, "calls")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "+15550100", state.Applied["phone"])
	raw, err := mr.Get("view:calls")
	require.NoError(t, err)
	assert.NotContains(t, raw, "+15550100")
}

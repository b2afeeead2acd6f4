package routes_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	_ "github.com/unifiedui/admin-gateway/docs"
	"github.com/unifiedui/admin-gateway/internal/api/handlers"
	"github.com/unifiedui/admin-gateway/internal/api/middleware"
	"github.com/unifiedui/admin-gateway/internal/api/routes"
	rediscache "github.com/unifiedui/admin-gateway/internal/infrastructure/cache/redis"
	"github.com/unifiedui/admin-gateway/internal/mocks"
	"github.com/unifiedui/admin-gateway/internal/services/calllog"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
	"github.com/unifiedui/admin-gateway/internal/services/presets"
	"github.com/unifiedui/admin-gateway/internal/services/views"
	"github.com/unifiedui/admin-gateway/internal/testutil"
)

// newServer wires the API against an upstream that rejects every session.
func newServer(t *testing.T) (*gin.Engine, *atomic.Int32) {
	t.Helper()

	var listCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/calls", func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	upstream := httptest.NewServer(mux)
	t.Cleanup(upstream.Close)

	gw, err := gateway.New(&gateway.Config{AdminURL: upstream.URL})
	require.NoError(t, err)
	client, err := calllog.NewClient(gw)
	require.NoError(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	cacheClient, err := rediscache.NewClient(rediscache.Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	t.Cleanup(func() {
		cacheClient.Close()
		mr.Close()
	})
	store, err := views.NewStore(cacheClient, nil, time.Minute)
	require.NoError(t, err)
	registry, err := views.NewRegistry(&views.RegistryConfig{Client: client, Store: store})
	require.NoError(t, err)
	gw.OnSessionExpired(func(error) { _ = registry.Reset(t.Context()) })

	docDB := mocks.NewMockDocDBClient()
	docDB.On("Ping", mock.Anything).Return(nil)
	presetService, err := presets.NewService(docDB.Presets())
	require.NoError(t, err)

	router := testutil.SetupTestRouter()
	routes.SetupWithMiddleware(router, &routes.Config{
		HealthHandler:     handlers.NewHealthHandler(cacheClient, docDB, gw),
		SessionHandler:    handlers.NewSessionHandler(gw),
		ViewsHandler:      handlers.NewViewsHandler(registry),
		PresetsHandler:    handlers.NewPresetsHandler(presetService, registry),
		SessionMiddleware: middleware.NewSessionMiddleware(gw),
		EnableDocs:        true,
	}, middleware.NewLoggingMiddleware(), middleware.NewErrorMiddleware(), middleware.DefaultCORSConfig(nil))
	return router, &listCalls
}

func TestRoutes_Health(t *testing.T) {
	router, _ := newServer(t)

	w := testutil.PerformRequest(router, http.MethodGet, routes.BasePath+"/health", nil, nil)

	testutil.AssertStatusCode(t, http.StatusOK, w)
	assert.Contains(t, w.Body.String(), `"session":"unknown"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRoutes_SessionLossShortCircuitsViews(t *testing.T) {
	router, listCalls := newServer(t)

	// Act: the first view load hits the upstream and loses the session.
	w := testutil.PerformRequest(router, http.MethodGet, routes.BasePath+"/views/main", nil, nil)

	// Assert
	testutil.AssertStatusCode(t, http.StatusUnauthorized, w)
	assert.Equal(t, "true", w.Header().Get(middleware.SessionExpiredHeader))
	assert.Equal(t, int32(1), listCalls.Load())

	// Act: later view requests never reach the upstream.
	w = testutil.PerformRequest(router, http.MethodPost, routes.BasePath+"/views/other/apply", nil, nil)

	// Assert
	testutil.AssertStatusCode(t, http.StatusUnauthorized, w)
	assert.Contains(t, w.Body.String(), `"reason":"logged_out"`)
	assert.Equal(t, int32(1), listCalls.Load())

	// The session endpoint still answers normally.
	w = testutil.PerformRequest(router, http.MethodGet, routes.BasePath+"/session", nil, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestRoutes_NotFound(t *testing.T) {
	router, _ := newServer(t)

	w := testutil.PerformRequest(router, http.MethodGet, routes.BasePath+"/nope", nil, nil)

	testutil.AssertStatusCode(t, http.StatusNotFound, w)
}

func TestRoutes_Docs(t *testing.T) {
	router, _ := newServer(t)

	w := testutil.PerformRequest(router, http.MethodGet, "/docs/doc.json", nil, nil)

	testutil.AssertStatusCode(t, http.StatusOK, w)
	assert.Contains(t, w.Body.String(), "/views/{viewId}/apply")
}

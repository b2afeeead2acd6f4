// Package handlers_test provides unit tests for the API handlers.
package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/admin-gateway/internal/api/dto"
	"github.com/unifiedui/admin-gateway/internal/api/handlers"
	"github.com/unifiedui/admin-gateway/internal/mocks"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
	"github.com/unifiedui/admin-gateway/internal/testutil"
)

func TestHealthHandler_Health_AllHealthy(t *testing.T) {
	// Arrange
	mockCache := &mocks.MockCacheClient{}
	mockDocDB := mocks.NewMockDocDBClient()
	sessions := &mocks.MockSessionManager{}

	mockCache.On("Ping", mock.Anything).Return(nil)
	mockDocDB.On("Ping", mock.Anything).Return(nil)
	sessions.On("State").Return(gateway.SessionActive)

	handler := handlers.NewHealthHandler(mockCache, mockDocDB, sessions)
	router := testutil.SetupTestRouter()
	router.GET("/health", handler.Health)

	// Act
	w := testutil.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	// Assert
	testutil.AssertStatusCode(t, http.StatusOK, w)

	var response dto.HealthResponse
	testutil.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "healthy", response.Components["cache"])
	assert.Equal(t, "healthy", response.Components["docdb"])
	assert.Equal(t, "active", response.Components["session"])

	mockCache.AssertExpectations(t)
	mockDocDB.AssertExpectations(t)
}

func TestHealthHandler_Health_LoggedOutIsStillHealthy(t *testing.T) {
	// Arrange
	mockCache := &mocks.MockCacheClient{}
	mockDocDB := mocks.NewMockDocDBClient()
	sessions := &mocks.MockSessionManager{}

	mockCache.On("Ping", mock.Anything).Return(nil)
	mockDocDB.On("Ping", mock.Anything).Return(nil)
	sessions.On("State").Return(gateway.SessionLoggedOut)

	handler := handlers.NewHealthHandler(mockCache, mockDocDB, sessions)
	router := testutil.SetupTestRouter()
	router.GET("/health", handler.Health)

	// Act
	w := testutil.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	// Assert
	testutil.AssertStatusCode(t, http.StatusOK, w)
	var response dto.HealthResponse
	testutil.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "logged_out", response.Components["session"])
}

func TestHealthHandler_Health_CacheUnhealthy(t *testing.T) {
	// Arrange
	mockCache := &mocks.MockCacheClient{}
	mockDocDB := mocks.NewMockDocDBClient()

	mockCache.On("Ping", mock.Anything).Return(assert.AnError)
	mockDocDB.On("Ping", mock.Anything).Return(nil)

	handler := handlers.NewHealthHandler(mockCache, mockDocDB, nil)
	router := testutil.SetupTestRouter()
	router.GET("/health", handler.Health)

	// Act
	w := testutil.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	// Assert
	testutil.AssertStatusCode(t, http.StatusServiceUnavailable, w)

	var response dto.HealthResponse
	testutil.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "unhealthy", response.Components["cache"])
	assert.Equal(t, "healthy", response.Components["docdb"])
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name      string
		cacheErr  error
		docDBErr  error
		wantCode  int
		wantPings bool
	}{
		{name: "ready", wantCode: http.StatusOK, wantPings: true},
		{name: "cache down", cacheErr: assert.AnError, wantCode: http.StatusServiceUnavailable},
		{name: "docdb down", docDBErr: assert.AnError, wantCode: http.StatusServiceUnavailable, wantPings: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockCache := &mocks.MockCacheClient{}
			mockDocDB := mocks.NewMockDocDBClient()
			mockCache.On("Ping", mock.Anything).Return(tt.cacheErr)
			mockDocDB.On("Ping", mock.Anything).Return(tt.docDBErr)

			handler := handlers.NewHealthHandler(mockCache, mockDocDB, nil)
			router := testutil.SetupTestRouter()
			router.GET("/ready", handler.Ready)

			// Act
			w := testutil.PerformRequest(router, http.MethodGet, "/ready", nil, nil)

			// Assert
			testutil.AssertStatusCode(t, tt.wantCode, w)
			if tt.wantPings {
				mockDocDB.AssertCalled(t, "Ping", mock.Anything)
			} else {
				mockDocDB.AssertNotCalled(t, "Ping", mock.Anything)
			}
		})
	}
}

func TestHealthHandler_Live(t *testing.T) {
	handler := handlers.NewHealthHandler(&mocks.MockCacheClient{}, mocks.NewMockDocDBClient(), nil)
	router := testutil.SetupTestRouter()
	router.GET("/live", handler.Live)

	w := testutil.PerformRequest(router, http.MethodGet, "/live", nil, nil)

	testutil.AssertStatusCode(t, http.StatusOK, w)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}

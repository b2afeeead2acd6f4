// Package main is the entry point for the UnifiedUI Admin Gateway.
// @title UnifiedUI Admin Gateway API
// @version 1.0
// @description Session-aware gateway and filter pipeline for the call-log administration API

// @contact.name API Support
// @contact.url https://github.com/unifiedui/admin-gateway

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1/admin-gateway
// @schemes http https
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/unifiedui/admin-gateway/docs"
	"github.com/unifiedui/admin-gateway/internal/api/handlers"
	"github.com/unifiedui/admin-gateway/internal/api/middleware"
	"github.com/unifiedui/admin-gateway/internal/api/routes"
	"github.com/unifiedui/admin-gateway/internal/config"
	"github.com/unifiedui/admin-gateway/internal/core/cache"
	"github.com/unifiedui/admin-gateway/internal/core/docdb"
	"github.com/unifiedui/admin-gateway/internal/core/vault"
	rediscache "github.com/unifiedui/admin-gateway/internal/infrastructure/cache/redis"
	"github.com/unifiedui/admin-gateway/internal/infrastructure/docdb/mongodb"
	dotenvvault "github.com/unifiedui/admin-gateway/internal/infrastructure/vault/dotenv"
	"github.com/unifiedui/admin-gateway/internal/pkg/encryption"
	"github.com/unifiedui/admin-gateway/internal/pkg/logging"
	"github.com/unifiedui/admin-gateway/internal/services/calllog"
	"github.com/unifiedui/admin-gateway/internal/services/gateway"
	"github.com/unifiedui/admin-gateway/internal/services/presets"
	"github.com/unifiedui/admin-gateway/internal/services/views"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.Setup(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx := context.Background()

	vaultClient, err := createVault(cfg.Vault)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize vault")
	}
	defer vaultClient.Close()

	cacheClient, err := createCacheClient(cfg.Cache)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize cache client")
	}
	defer cacheClient.Close()

	docDBClient, err := createDocDBClient(ctx, cfg.DocDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize document db client")
	}
	defer docDBClient.Close(ctx)

	if err := docDBClient.EnsureIndexes(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to ensure indexes")
	}

	gw, err := gateway.New(&gateway.Config{
		AdminURL:     cfg.Upstream.AdminURL,
		DashboardURL: cfg.Upstream.DashboardURL,
		RefreshPath:  cfg.Upstream.RefreshPath,
		LoginPath:    cfg.Upstream.LoginPath,
		LogoutPath:   cfg.Upstream.LogoutPath,
		MePath:       cfg.Upstream.MePath,
		Timeout:      cfg.Upstream.Timeout,
		Logger:       &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize gateway")
	}

	callLogClient, err := calllog.NewClient(gw)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize call-log client")
	}

	stateEncryptor, err := encryption.New(cfg.Views.StateKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize view state encryptor")
	}
	if cfg.Views.StateKey == "" {
		logger.Warn().Msg("VIEW_STATE_ENCRYPTION_KEY not set, view state is stored unencrypted")
	}

	viewStore, err := views.NewStore(cacheClient, stateEncryptor, cfg.Views.StateTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize view store")
	}

	registry, err := views.NewRegistry(&views.RegistryConfig{
		Client:   callLogClient,
		Store:    viewStore,
		PageSize: cfg.Views.PageSize,
		Logger:   &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize view registry")
	}

	// Views hold data of the lost session; drop them.
	gw.OnSessionExpired(func(error) {
		resetCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = registry.Reset(resetCtx)
	})

	presetService, err := presets.NewService(docDBClient.Presets())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize preset service")
	}

	if cfg.Upstream.ServiceLogin() {
		if err := serviceLogin(ctx, gw, vaultClient, cfg.Upstream); err != nil {
			logger.Warn().Err(err).Msg("service login failed; waiting for an interactive login")
		}
	}

	gin.SetMode(cfg.Server.GinMode)
	middleware.SetLoginRedirect(cfg.Server.LoginRedirect)

	router := setupRouter(cfg, logger, cacheClient, docDBClient, gw, registry, presetService)

	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := gw.Logout(shutdownCtx); err != nil {
		logger.Debug().Err(err).Msg("upstream logout on shutdown failed")
	}

	logger.Info().Msg("server exited")
}

// createVault creates a vault based on the configuration.
func createVault(cfg config.VaultConfig) (vault.Vault, error) {
	switch vault.Type(cfg.Type) {
	case vault.TypeDotEnv:
		return dotenvvault.NewVault(nil), nil
	default:
		return nil, fmt.Errorf("unsupported vault type: %s", cfg.Type)
	}
}

// createCacheClient creates a cache client based on the configuration.
func createCacheClient(cfg config.CacheConfig) (cache.Client, error) {
	switch cache.Type(cfg.Type) {
	case cache.TypeRedis:
		return rediscache.NewClient(rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: cfg.TTL,
			KeyPrefix:  cfg.KeyPrefix,
		})
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

// createDocDBClient creates a document database client based on the configuration.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	switch docdb.Type(cfg.Type) {
	case docdb.TypeMongoDB:
		return mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:          cfg.URI,
			DatabaseName: cfg.Database,
		})
	default:
		return nil, fmt.Errorf("unsupported docdb type: %s", cfg.Type)
	}
}

// serviceLogin signs the gateway in with credentials from the vault.
func serviceLogin(ctx context.Context, gw *gateway.Gateway, v vault.Vault, cfg config.UpstreamConfig) error {
	creds, err := vault.ResolveCredentials(ctx, v, cfg.Username, cfg.PasswordRef)
	if err != nil {
		return err
	}
	loginCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if _, err := gw.Login(loginCtx, creds); err != nil {
		return fmt.Errorf("failed to sign in as %s: %w", cfg.Username, err)
	}
	return nil
}

// setupRouter creates and configures the Gin router.
func setupRouter(
	cfg *config.Config,
	logger zerolog.Logger,
	cacheClient cache.Client,
	docDBClient docdb.Client,
	gw *gateway.Gateway,
	registry *views.Registry,
	presetService presets.Service,
) *gin.Engine {
	router := gin.New()

	loggingMw := middleware.NewLoggingMiddlewareWithLogger(logger)
	errorMw := middleware.NewErrorMiddleware()

	routesCfg := &routes.Config{
		HealthHandler:     handlers.NewHealthHandler(cacheClient, docDBClient, gw),
		SessionHandler:    handlers.NewSessionHandler(gw),
		ViewsHandler:      handlers.NewViewsHandler(registry),
		PresetsHandler:    handlers.NewPresetsHandler(presetService, registry),
		SessionMiddleware: middleware.NewSessionMiddleware(gw),
		EnableDocs:        cfg.Server.EnableDocs,
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw, middleware.DefaultCORSConfig(cfg.Server.CORSAllowedOrigins))

	return router
}

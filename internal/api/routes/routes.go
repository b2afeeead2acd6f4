// Package routes defines the HTTP routes for the admin gateway.
package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/unifiedui/admin-gateway/internal/api/handlers"
	"github.com/unifiedui/admin-gateway/internal/api/middleware"
)

// BasePath is the root of every API route.
const BasePath = "/api/v1/admin-gateway"

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler     *handlers.HealthHandler
	SessionHandler    *handlers.SessionHandler
	ViewsHandler      *handlers.ViewsHandler
	PresetsHandler    *handlers.PresetsHandler
	SessionMiddleware *middleware.SessionMiddleware
	EnableDocs        bool
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group(BasePath)
	{
		// Health check routes
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		session := v1.Group("/session")
		{
			session.GET("", cfg.SessionHandler.Check)
			session.POST("/login", cfg.SessionHandler.Login)
			session.POST("/logout", cfg.SessionHandler.Logout)
		}

		presets := v1.Group("/presets")
		{
			presets.GET("", cfg.PresetsHandler.List)
			presets.POST("", cfg.PresetsHandler.Create)
			presets.GET("/:presetId", cfg.PresetsHandler.Get)
			presets.DELETE("/:presetId", cfg.PresetsHandler.Delete)
		}

		// Views talk to the upstream and need a live session.
		protected := v1.Group("")
		protected.Use(cfg.SessionMiddleware.RequireSession())

		view := protected.Group("/views/:viewId")
		{
			view.GET("", cfg.ViewsHandler.Get)
			view.DELETE("", cfg.ViewsHandler.Close)

			view.PUT("/staged/:key", cfg.ViewsHandler.Stage)
			view.POST("/apply", cfg.ViewsHandler.Apply)
			view.POST("/clear", cfg.ViewsHandler.Clear)
			view.DELETE("/filters/:key", cfg.ViewsHandler.RemoveFilter)
			view.PUT("/page", cfg.ViewsHandler.SetPage)
			view.POST("/reload", cfg.ViewsHandler.Reload)

			view.GET("/selection", cfg.ViewsHandler.GetSelection)
			view.PUT("/selection", cfg.ViewsHandler.Select)
			view.DELETE("/selection", cfg.ViewsHandler.ClearSelection)

			view.GET("/export", cfg.ViewsHandler.Export)
			view.POST("/presets/:presetId", cfg.PresetsHandler.Load)
		}
	}

	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware, cors middleware.CORSConfig) {
	r.HandleMethodNotAllowed = true

	r.Use(middleware.NewCORSMiddleware(cors))
	r.Use(loggingMw.RequestLogger())
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())

	Setup(r, cfg)
}

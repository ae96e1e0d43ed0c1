package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/xcard-server/internal/api/http/handler"
	"github.com/dtroode/xcard-server/internal/api/http/middleware"
	"github.com/dtroode/xcard-server/internal/logger"
)

// Router wires HTTP handlers and middleware.
type Router struct {
	registryService  handler.RegistryService
	profileService   handler.ProfileService
	cardImageService handler.CardImageService
	logger           *logger.Logger
}

// New creates a Router. cardImageService may be nil when object storage is disabled.
func New(
	registryService handler.RegistryService,
	profileService handler.ProfileService,
	cardImageService handler.CardImageService,
	logger *logger.Logger,
) *Router {
	return &Router{
		registryService:  registryService,
		profileService:   profileService,
		cardImageService: cardImageService,
		logger:           logger,
	}
}

func (r *Router) Register() *gin.Engine {
	e := gin.New()
	e.Use(middleware.Logging(r.logger), gin.Recovery())

	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := e.Group("/api")

	registry := handler.NewRegistry(r.registryService, r.logger)
	api.POST("/users", registry.Register)
	api.GET("/users", registry.Get)
	api.GET("/stats", registry.Stats)
	api.POST("/init-db", registry.InitDB)
	api.GET("/test-db", registry.TestDB)

	profile := handler.NewProfile(r.profileService, r.logger)
	api.POST("/profile", profile.Resolve)
	api.GET("/oauth-status", profile.OAuthStatus)

	if r.cardImageService != nil {
		images := handler.NewCardImage(r.cardImageService, r.logger)
		api.PUT("/cards/:username/image", images.Upload)
		api.GET("/cards/:username/image", images.Download)
		api.DELETE("/cards/:username/image", images.Delete)
	}

	return e
}

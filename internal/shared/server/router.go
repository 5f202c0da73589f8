package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docclassify-backend/internal/classify"
	"docclassify-backend/internal/platforms"
	"docclassify-backend/internal/services/health"
	"docclassify-backend/internal/shared/config"
	"docclassify-backend/internal/shared/server/middleware"
	"docclassify-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	ClassifyHandler *classify.Handler
	PlatformHandler *platforms.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	healthSvc := health.NewService()

	r.GET("/", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"message": "Document Classification Service"})
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	deps.ClassifyHandler.RegisterRoutes(api)
	deps.PlatformHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

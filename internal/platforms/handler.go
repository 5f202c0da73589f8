package platforms

import (
	"github.com/gin-gonic/gin"

	"docclassify-backend/internal/shared/server/respond"
)

// Handler exposes the platform registry over HTTP.
type Handler struct {
	Connector *Connector
}

// NewHandler constructs a Handler.
func NewHandler(connector *Connector) *Handler {
	return &Handler{Connector: connector}
}

// RegisterRoutes attaches platform routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/supported-platforms", h.supportedPlatforms)
}

func (h *Handler) supportedPlatforms(c *gin.Context) {
	respond.OK(c, gin.H{"platforms": h.Connector.SupportedPlatforms()})
}

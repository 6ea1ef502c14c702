package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homepro-hq/marketplace-backend/internal/categories/service"
)

type Handler struct {
	resolver *service.Resolver
}

// Register attaches category routes to the given router group.
func Register(rg *gin.RouterGroup, resolver *service.Resolver) {
	h := &Handler{resolver: resolver}

	rg.GET("", h.list)
}

func (h *Handler) list(c *gin.Context) {
	cats, err := h.resolver.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "categories": cats})
}

package http

import "github.com/gin-gonic/gin"

// Register attaches the intake wizard routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:draft_id", h.get)
	rg.PATCH("/:draft_id", h.update)
	rg.DELETE("/:draft_id", h.remove)
	rg.POST("/:draft_id/advance", h.advance)
	rg.POST("/:draft_id/retreat", h.retreat)
	rg.POST("/:draft_id/images", h.uploadImages)
	rg.DELETE("/:draft_id/images/:image_id", h.removeImage)
	rg.POST("/:draft_id/submit", h.submit)
}

package http

import "github.com/gin-gonic/gin"

// RegisterPublic attaches the anonymous testimonial routes.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
}

// RegisterAdmin attaches the moderation routes; callers wrap the group in
// the strict auth middleware.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.PUT("/:id/approve", h.approve)
	rg.DELETE("/:id", h.remove)
}

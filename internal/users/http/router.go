package http

import "github.com/gin-gonic/gin"

// Register attaches user routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/:uid", h.get)
	rg.PUT("/:uid", h.update)
	rg.GET("/:uid/preferences", h.getPreferences)
	rg.PUT("/:uid/preferences", h.setPreferences)
}

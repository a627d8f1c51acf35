package http

import "github.com/gin-gonic/gin"

// Register attaches project routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
}

// RegisterUserRoutes attaches the per-user project lookup under /users/:uid.
func (h *Handler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/:uid/project", h.activeForUser)
}

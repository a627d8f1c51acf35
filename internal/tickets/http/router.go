package http

import "github.com/gin-gonic/gin"

// Register attaches ticket routes under /tickets.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.setStatus)
	rg.POST("/:id/responses", h.addResponse)
}

// RegisterUserRoutes attaches per-user ticket routes under /users/:uid.
func (h *Handler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/:uid/tickets", h.listForUser)
	rg.POST("/:uid/tickets", h.create)
}

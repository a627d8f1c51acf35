package http

import "github.com/gin-gonic/gin"

// Register attaches the public payment routes to the engine root:
// the checkout preference endpoint keeps its historical Spanish path.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/crear-preferencia", h.createPreference)
	r.GET("/api/payments/status/:id", h.status)
	r.POST("/webhook/mercadopago", h.webhook)
	r.GET("/webhook/mercadopago/health", h.webhookHealth)
}

// RegisterUserRoutes attaches the per-user payment history under /users/:uid.
func (h *Handler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/:uid/payments", h.listForUser)
}

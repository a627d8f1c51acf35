package http

import "github.com/gin-gonic/gin"

// Register attaches the public auth routes under /api/auth. The dev
// verification shortcut is never registered in production.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/verify/:token", h.verify)
	if !h.production {
		rg.GET("/dev-verify/:email", h.devVerify)
	}
	rg.GET("/google/login", h.googleLogin)
	rg.GET("/google/callback", h.googleCallback)
}

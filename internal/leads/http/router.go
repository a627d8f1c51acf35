package http

import "github.com/gin-gonic/gin"

// Register attaches the public lead intake routes. Callers are expected
// to wrap the router in a rate limiter.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/contact", h.contact)
	r.POST("/newsletter", h.newsletter)
	r.POST("/api/propuesta", h.proposal)
	r.POST("/api/applications", h.application)
}

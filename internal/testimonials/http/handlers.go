package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tuwebai/tuweb-backend/internal/auth"
	"github.com/tuwebai/tuweb-backend/internal/testimonials/domain"
)

// list serves GET /api/testimonials — approved entries only.
func (h *Handler) list(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := h.store.ListApproved(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "testimonial store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

type createReq struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Testimonial string `json:"testimonial"`
}

// create serves POST /api/testimonials. New entries always start
// unapproved and wait for an admin.
func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	t := &domain.Testimonial{
		Name:        strings.TrimSpace(req.Name),
		Company:     strings.TrimSpace(req.Company),
		Testimonial: strings.TrimSpace(req.Testimonial),
	}
	if err := t.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.store.Create(c.Request.Context(), t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create testimonial"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// approve serves PUT /api/testimonials/:id/approve (admin only).
func (h *Handler) approve(c *gin.Context) {
	if !auth.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.store.Approve(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "testimonial not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to approve testimonial"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// remove serves DELETE /api/testimonials/:id (admin only).
func (h *Handler) remove(c *gin.Context) {
	if !auth.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "testimonial not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete testimonial"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

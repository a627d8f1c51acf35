package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuwebai/tuweb-backend/internal/auth"
	"github.com/tuwebai/tuweb-backend/internal/users/domain"
)

func (h *Handler) get(c *gin.Context) {
	uid := c.Param("uid")
	if !canAccess(c, uid) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	u, err := h.store.GetByUID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "user store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": u})
}

type updateReq struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
}

func (h *Handler) update(c *gin.Context) {
	uid := c.Param("uid")
	if !canAccess(c, uid) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	u, err := h.store.GetByUID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "user store unavailable"})
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Company != nil {
		u.Company = *req.Company
	}

	if err := h.store.Update(c.Request.Context(), u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": u})
}

func (h *Handler) getPreferences(c *gin.Context) {
	uid := c.Param("uid")
	if !canAccess(c, uid) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	p, err := h.store.GetPreferences(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "user store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

func (h *Handler) setPreferences(c *gin.Context) {
	uid := c.Param("uid")
	if !canAccess(c, uid) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var p domain.Preferences
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := h.store.SetPreferences(c.Request.Context(), uid, &p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// canAccess allows a user to touch their own record, and admins to touch any.
func canAccess(c *gin.Context, uid string) bool {
	return auth.UserFirebaseUID(c) == uid || auth.IsAdmin(c)
}

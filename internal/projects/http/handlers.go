package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tuwebai/tuweb-backend/internal/auth"
	"github.com/tuwebai/tuweb-backend/internal/projects/domain"
)

type createReq struct {
	UserID string                `json:"userId"`
	Name   string                `json:"name"`
	Type   string                `json:"type"`
	Phases []domain.ProjectPhase `json:"phases"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: name is required"})
		return
	}

	// Only admins create projects for other users.
	userID := auth.UserFirebaseUID(c)
	if req.UserID != "" && req.UserID != userID {
		if !auth.IsAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		userID = req.UserID
	}

	p := &domain.Project{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Type:   req.Type,
		Status: domain.StatusActive,
		Phases: req.Phases,
	}

	created, err := h.store.Create(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// activeForUser serves GET /api/users/:uid/project — the dashboard's
// "current project" card.
func (h *Handler) activeForUser(c *gin.Context) {
	uid := c.Param("uid")
	if auth.UserFirebaseUID(c) != uid && !auth.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	p, err := h.store.GetActiveByUser(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active project"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "project store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

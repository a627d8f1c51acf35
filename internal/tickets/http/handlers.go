package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tuwebai/tuweb-backend/internal/auth"
	"github.com/tuwebai/tuweb-backend/internal/tickets/domain"
)

type createReq struct {
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// create serves POST /api/users/:uid/tickets.
func (h *Handler) create(c *gin.Context) {
	uid := c.Param("uid")
	if auth.UserFirebaseUID(c) != uid && !auth.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject and message are required"})
		return
	}

	t, err := h.store.Create(c.Request.Context(), &domain.SupportTicket{
		UserID:   uid,
		Subject:  strings.TrimSpace(req.Subject),
		Message:  strings.TrimSpace(req.Message),
		Priority: req.Priority,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": t})
}

// listForUser serves GET /api/users/:uid/tickets.
func (h *Handler) listForUser(c *gin.Context) {
	uid := c.Param("uid")
	if auth.UserFirebaseUID(c) != uid && !auth.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	items, err := h.store.ListByUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ticket store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// get serves GET /api/tickets/:id.
func (h *Handler) get(c *gin.Context) {
	t, ok := h.authorizedTicket(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": t})
}

type statusReq struct {
	Status string `json:"status"`
}

// setStatus serves PUT /api/tickets/:id.
func (h *Handler) setStatus(c *gin.Context) {
	t, ok := h.authorizedTicket(c)
	if !ok {
		return
	}

	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil || !domain.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	if err := h.store.SetStatus(c.Request.Context(), t.ID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type responseReq struct {
	Message string `json:"message"`
}

// addResponse serves POST /api/tickets/:id/responses. The author type
// follows who is talking: the owner is "client", anyone else is "admin".
func (h *Handler) addResponse(c *gin.Context) {
	t, ok := h.authorizedTicket(c)
	if !ok {
		return
	}

	var req responseReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	authorType := domain.AuthorClient
	if auth.UserFirebaseUID(c) != t.UserID {
		authorType = domain.AuthorAdmin
	}

	resp := domain.TicketResponse{
		Author:     auth.UserFirebaseUID(c),
		AuthorType: authorType,
		Message:    strings.TrimSpace(req.Message),
	}
	if err := h.store.AppendResponse(c.Request.Context(), t.ID, resp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add response"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// authorizedTicket loads the ticket and enforces owner-or-admin access.
func (h *Handler) authorizedTicket(c *gin.Context) (*domain.SupportTicket, bool) {
	t, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return nil, false
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ticket store unavailable"})
		return nil, false
	}
	if auth.UserFirebaseUID(c) != t.UserID && !auth.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return t, true
}

package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuwebai/tuweb-backend/internal/leads/domain"
)

func (h *Handler) contact(c *gin.Context) {
	var msg domain.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.leads.SubmitContact(c.Request.Context(), &msg)
	if err != nil {
		h.fail(c, err, "contact")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"id": id}})
}

func (h *Handler) newsletter(c *gin.Context) {
	var sub domain.NewsletterSubscriber
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if _, err := h.leads.SubscribeNewsletter(c.Request.Context(), &sub); err != nil {
		h.fail(c, err, "newsletter")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) proposal(c *gin.Context) {
	var req domain.ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.leads.SubmitProposal(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err, "proposal")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"id": id}})
}

func (h *Handler) application(c *gin.Context) {
	var app domain.JobApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.leads.SubmitApplication(c.Request.Context(), &app)
	if err != nil {
		h.fail(c, err, "application")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"id": id}})
}

// fail maps validation errors to 400 and everything else to 503.
func (h *Handler) fail(c *gin.Context, err error, kind string) {
	if isValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[leads] %s: %v", kind, err)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not save your request, try again later"})
}

func isValidation(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}

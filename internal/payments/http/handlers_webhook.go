package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuwebai/tuweb-backend/internal/payments/domain"
	"github.com/tuwebai/tuweb-backend/internal/payments/service"
)

// webhook serves POST /webhook/mercadopago. Mercado Pago delivers
// at-least-once, so replays of the same payment id must get the same 200
// the first delivery got.
func (h *Handler) webhook(c *gin.Context) {
	var event domain.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	outcome := service.VerifySignature(
		h.webhookSecret,
		c.GetHeader("x-signature"),
		c.GetHeader("x-request-id"),
		event.Data.ID,
	)
	switch outcome {
	case service.Invalid:
		log.Printf("[webhook] rejected invalid signature for payment %s", event.Data.ID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	case service.Unverified:
		// No secret configured. Accepting keeps payment events flowing
		// through secret rotation or misconfiguration.
		log.Printf("[webhook] accepting unverified delivery for payment %s", event.Data.ID)
	}

	err := h.payments.HandleWebhookEvent(c.Request.Context(), &event)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEvent) {
			c.JSON(http.StatusOK, gin.H{"success": true, "duplicate": true})
			return
		}
		log.Printf("[webhook] processing failed for payment %s: %v", event.Data.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// webhookHealth serves GET /webhook/mercadopago/health, a static liveness
// probe independent of any ledger state.
func (h *Handler) webhookHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
